package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tpm/internal/interchange"
	"github.com/example/tpm/internal/wire"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export and import the full database as a JSON bundle",
}

var dataExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export everything to a JSON bundle (stdout if no file given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := wire.Exporter().ExportBundle(cmd.Context())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode bundle: %w", err)
		}

		if len(args) == 0 {
			fmt.Println(string(data))
			return nil
		}

		if err := os.WriteFile(args[0], append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write bundle: %w", err)
		}

		fmt.Printf("✓ Exported %d orgs, %d projects, %d tickets, %d tasks, %d notes to %s\n",
			len(bundle.Orgs), len(bundle.Projects), len(bundle.Tickets),
			len(bundle.Tasks), len(bundle.Notes), args[0])
		return nil
	},
}

var dataImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a JSON bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clear, _ := cmd.Flags().GetBool("clear")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read bundle: %w", err)
		}

		var bundle interchange.Bundle
		if err := json.Unmarshal(data, &bundle); err != nil {
			return fmt.Errorf("failed to parse bundle: %w", err)
		}

		stats, err := wire.Importer().ImportBundle(cmd.Context(), &bundle, clear)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("✓ Imported %d orgs, %d projects, %d tickets, %d tasks, %d notes, %d dependencies\n",
			stats.Orgs, stats.Projects, stats.Tickets, stats.Tasks, stats.Notes, stats.Dependencies)

		if len(stats.Errors) > 0 {
			warn := color.New(color.FgYellow)
			warn.Printf("⚠ %d records skipped:\n", len(stats.Errors))
			for _, e := range stats.Errors {
				fmt.Printf("  %s\n", e)
			}
		}
		return nil
	},
}

func init() {
	dataImportCmd.Flags().Bool("clear", false, "Wipe existing data before importing")

	dataCmd.AddCommand(dataExportCmd)
	dataCmd.AddCommand(dataImportCmd)
}

// DataCmd returns the data command
func DataCmd() *cobra.Command {
	return dataCmd
}
