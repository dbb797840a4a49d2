package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tpm/internal/db"
	"github.com/example/tpm/internal/wire"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database location and store totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := db.GetDBPath()
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}

		roadmap, err := wire.RoadmapService().BuildRoadmap(cmd.Context(), "")
		if err != nil {
			return fmt.Errorf("failed to read store: %w", err)
		}

		projects := 0
		for _, org := range roadmap.Orgs {
			projects += len(org.Projects)
		}

		fmt.Printf("Database: %s\n", path)
		fmt.Printf("Orgs: %d\n", len(roadmap.Orgs))
		fmt.Printf("Projects: %d\n", projects)
		fmt.Printf("Tickets: %d (%d done)\n", roadmap.Stats.TotalTickets, roadmap.Stats.TicketsDone)
		fmt.Printf("Tasks: %d (%d done)\n", roadmap.Stats.TotalTasks, roadmap.Stats.TasksDone)
		fmt.Printf("Completion: %.1f%%\n", roadmap.Stats.CompletionPct)
		return nil
	},
}

// InfoCmd returns the info command
func InfoCmd() *cobra.Command {
	return infoCmd
}
