package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/wire"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long:  "Attach free-form notes to orgs, projects, tickets, and tasks",
}

// resolveNoteTarget maps the target flags to an (entityType, entityID)
// pair. Exactly one target flag must be set.
func resolveNoteTarget(cmd *cobra.Command) (string, string, error) {
	orgID, _ := cmd.Flags().GetString("org")
	projectID, _ := cmd.Flags().GetString("project")
	ticketID, _ := cmd.Flags().GetString("ticket")
	taskID, _ := cmd.Flags().GetString("task")

	targets := map[string]string{
		"org":     orgID,
		"project": projectID,
		"ticket":  ticketID,
		"task":    taskID,
	}

	entityType := ""
	entityID := ""
	for t, id := range targets {
		if id == "" {
			continue
		}
		if entityType != "" {
			return "", "", fmt.Errorf("multiple targets specified\nHint: pass exactly one of --org, --project, --ticket, --task")
		}
		entityType = t
		entityID = id
	}
	if entityType == "" {
		return "", "", fmt.Errorf("no target specified\nHint: pass one of --org, --project, --ticket, --task")
	}
	return entityType, entityID, nil
}

var noteAddCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Attach a note to an entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityType, entityID, err := resolveNoteTarget(cmd)
		if err != nil {
			return err
		}

		note, err := wire.NoteService().AddNote(cmd.Context(), primary.AddNoteRequest{
			EntityType: entityType,
			EntityID:   entityID,
			Content:    args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}

		fmt.Printf("✓ Added note %s\n", note.ID)
		fmt.Printf("  Target: %s (%s)\n", note.EntityID, note.EntityType)
		return nil
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show [note-id]",
	Short: "Show note details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := wire.NoteService().GetNote(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		if note == nil {
			return fmt.Errorf("note %s not found", args[0])
		}

		fmt.Printf("Note: %s\n", note.ID)
		fmt.Printf("Target: %s (%s)\n", note.EntityID, note.EntityType)
		fmt.Printf("Created: %s\n", note.CreatedAt)
		fmt.Printf("Content: %s\n", note.Content)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an entity's notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		entityType, entityID, err := resolveNoteTarget(cmd)
		if err != nil {
			return err
		}

		notes, err := wire.NoteService().ListNotes(cmd.Context(), entityType, entityID)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		if len(notes) == 0 {
			fmt.Println("No notes found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tCONTENT")
		fmt.Fprintln(w, "--\t-------\t-------")
		for _, n := range notes {
			fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.CreatedAt, n.Content)
		}
		w.Flush()
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{noteAddCmd, noteListCmd} {
		c.Flags().String("org", "", "Org ID to attach to")
		c.Flags().String("project", "", "Project ID to attach to")
		c.Flags().String("ticket", "", "Ticket ID to attach to")
		c.Flags().String("task", "", "Task ID to attach to")
	}

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteShowCmd)
	noteCmd.AddCommand(noteListCmd)
}

// NoteCmd returns the note command
func NoteCmd() *cobra.Command {
	return noteCmd
}
