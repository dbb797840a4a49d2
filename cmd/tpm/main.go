package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tpm/internal/cli"
	"github.com/example/tpm/internal/db"
	"github.com/example/tpm/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tpm",
		Short:   "tpm - hierarchical work tracking",
		Version: version.String(),
		Long: `tpm is a CLI tool for tracking work across orgs, projects, tickets, and tasks.
It keeps everything in a local SQLite store with full-text ticket search.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
				db.SetPath(dbPath)
			}
		},
	}

	rootCmd.PersistentFlags().String("db", "", "Database file (overrides config and the default location)")

	rootCmd.AddCommand(cli.OrgCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.TicketCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.NoteCmd())
	rootCmd.AddCommand(cli.RoadmapCmd())
	rootCmd.AddCommand(cli.InfoCmd())
	rootCmd.AddCommand(cli.DataCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
