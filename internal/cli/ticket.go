package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/wire"
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Manage tickets",
	Long:  "Create, list, update, and search tickets within a project",
}

var ticketCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project")
		description, _ := cmd.Flags().GetString("description")
		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")
		prefix, _ := cmd.Flags().GetString("prefix")
		assignees, _ := cmd.Flags().GetStringSlice("assignee")
		tags, _ := cmd.Flags().GetStringSlice("tag")
		repos, _ := cmd.Flags().GetStringSlice("repo")
		criteria, _ := cmd.Flags().GetStringSlice("criteria")
		blockers, _ := cmd.Flags().GetStringSlice("blocker")

		ticket, err := wire.TicketService().CreateTicket(cmd.Context(), primary.CreateTicketRequest{
			ProjectID:          projectID,
			Title:              args[0],
			Description:        description,
			Status:             status,
			Priority:           priority,
			Prefix:             prefix,
			Assignees:          assignees,
			Tags:               tags,
			RelatedRepos:       repos,
			AcceptanceCriteria: criteria,
			Blockers:           blockers,
		})
		if err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		fmt.Printf("✓ Created ticket %s: %s\n", ticket.ID, ticket.Title)
		fmt.Printf("  Project: %s\n", ticket.ProjectID)
		fmt.Printf("  Status: %s  Priority: %s\n", ticket.Status, ticket.Priority)
		return nil
	},
}

var ticketShowCmd = &cobra.Command{
	Use:   "show [ticket-id]",
	Short: "Show ticket details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticket, err := wire.TicketService().GetTicket(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get ticket: %w", err)
		}
		if ticket == nil {
			return fmt.Errorf("ticket %s not found", args[0])
		}

		fmt.Printf("Ticket: %s\n", ticket.ID)
		fmt.Printf("Title: %s\n", ticket.Title)
		fmt.Printf("Project: %s\n", ticket.ProjectID)
		fmt.Printf("Status: %s\n", ticket.Status)
		fmt.Printf("Priority: %s\n", ticket.Priority)
		if ticket.Description != "" {
			fmt.Printf("Description: %s\n", ticket.Description)
		}
		if len(ticket.Assignees) > 0 {
			fmt.Printf("Assignees: %s\n", strings.Join(ticket.Assignees, ", "))
		}
		if len(ticket.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(ticket.Tags, ", "))
		}
		if len(ticket.RelatedRepos) > 0 {
			fmt.Printf("Repos: %s\n", strings.Join(ticket.RelatedRepos, ", "))
		}
		if len(ticket.AcceptanceCriteria) > 0 {
			fmt.Println("Acceptance criteria:")
			for _, c := range ticket.AcceptanceCriteria {
				fmt.Printf("  - %s\n", c)
			}
		}
		if len(ticket.Blockers) > 0 {
			fmt.Println("Blockers:")
			for _, b := range ticket.Blockers {
				fmt.Printf("  - %s\n", b)
			}
		}
		fmt.Printf("Created: %s\n", ticket.CreatedAt)
		if ticket.StartedAt != "" {
			fmt.Printf("Started: %s\n", ticket.StartedAt)
		}
		if ticket.CompletedAt != "" {
			fmt.Printf("Completed: %s\n", ticket.CompletedAt)
		}
		return nil
	},
}

var ticketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project")
		status, _ := cmd.Flags().GetString("status")

		tickets, err := wire.TicketService().ListTickets(cmd.Context(), primary.TicketFilters{
			ProjectID: projectID,
			Status:    status,
		})
		if err != nil {
			return fmt.Errorf("failed to list tickets: %w", err)
		}

		if len(tickets) == 0 {
			fmt.Println("No tickets found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tPROJECT")
		fmt.Fprintln(w, "--\t-----\t------\t--------\t-------")
		for _, t := range tickets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, t.ProjectID)
		}
		w.Flush()
		return nil
	},
}

var ticketUpdateCmd = &cobra.Command{
	Use:   "update [ticket-id]",
	Short: "Update ticket fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.UpdateTicketRequest{TicketID: args[0]}

		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			req.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			req.Status = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			req.Priority = &v
		}
		if cmd.Flags().Changed("assignee") {
			v, _ := cmd.Flags().GetStringSlice("assignee")
			req.Assignees = &v
		}
		if cmd.Flags().Changed("tag") {
			v, _ := cmd.Flags().GetStringSlice("tag")
			req.Tags = &v
		}
		if cmd.Flags().Changed("blocker") {
			v, _ := cmd.Flags().GetStringSlice("blocker")
			req.Blockers = &v
		}

		if req.Title == nil && req.Description == nil && req.Status == nil &&
			req.Priority == nil && req.Assignees == nil && req.Tags == nil && req.Blockers == nil {
			return fmt.Errorf("nothing to update\nHint: pass at least one of --title, --description, --status, --priority, --assignee, --tag, --blocker")
		}

		ticket, err := wire.TicketService().UpdateTicket(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		if ticket == nil {
			return fmt.Errorf("ticket %s not found", args[0])
		}

		fmt.Printf("✓ Ticket %s updated\n", ticket.ID)
		fmt.Printf("  Status: %s  Priority: %s\n", ticket.Status, ticket.Priority)
		return nil
	},
}

var ticketSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over tickets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project")
		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")
		tags, _ := cmd.Flags().GetStringSlice("tag")
		limit, _ := cmd.Flags().GetInt("limit")

		results, err := wire.TicketService().SearchTickets(cmd.Context(), primary.SearchTicketsRequest{
			Query:     args[0],
			ProjectID: projectID,
			Status:    status,
			Priority:  priority,
			Tags:      tags,
			Limit:     limit,
		})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No matching tickets")
			return nil
		}

		for _, r := range results {
			fmt.Printf("%s [%s/%s] %s\n", r.TicketID, r.Status, r.Priority, r.Title)
			if r.Snippet != "" {
				fmt.Printf("  %s\n", r.Snippet)
			}
			if len(r.Tags) > 0 {
				fmt.Printf("  tags: %s\n", strings.Join(r.Tags, ", "))
			}
		}
		return nil
	},
}

func init() {
	// ticket create flags
	ticketCreateCmd.Flags().StringP("project", "p", "", "Project ID the ticket belongs to")
	ticketCreateCmd.Flags().StringP("description", "d", "", "Ticket description")
	ticketCreateCmd.Flags().String("status", "", "Initial status (defaults to backlog)")
	ticketCreateCmd.Flags().String("priority", "", "Priority (defaults to medium)")
	ticketCreateCmd.Flags().String("prefix", "", "ID prefix override (defaults to the project ID)")
	ticketCreateCmd.Flags().StringSlice("assignee", nil, "Assignee (repeatable)")
	ticketCreateCmd.Flags().StringSlice("tag", nil, "Tag (repeatable)")
	ticketCreateCmd.Flags().StringSlice("repo", nil, "Related repo (repeatable)")
	ticketCreateCmd.Flags().StringSlice("criteria", nil, "Acceptance criterion (repeatable)")
	ticketCreateCmd.Flags().StringSlice("blocker", nil, "Blocker (repeatable)")
	ticketCreateCmd.MarkFlagRequired("project")

	// ticket list flags
	ticketListCmd.Flags().StringP("project", "p", "", "Filter by project")
	ticketListCmd.Flags().String("status", "", "Filter by status")

	// ticket update flags
	ticketUpdateCmd.Flags().String("title", "", "New title")
	ticketUpdateCmd.Flags().StringP("description", "d", "", "New description")
	ticketUpdateCmd.Flags().String("status", "", "New status")
	ticketUpdateCmd.Flags().String("priority", "", "New priority")
	ticketUpdateCmd.Flags().StringSlice("assignee", nil, "Replace assignees")
	ticketUpdateCmd.Flags().StringSlice("tag", nil, "Replace tags")
	ticketUpdateCmd.Flags().StringSlice("blocker", nil, "Replace blockers")

	// ticket search flags
	ticketSearchCmd.Flags().StringP("project", "p", "", "Filter by project")
	ticketSearchCmd.Flags().String("status", "", "Filter by status")
	ticketSearchCmd.Flags().String("priority", "", "Filter by priority")
	ticketSearchCmd.Flags().StringSlice("tag", nil, "Require tag (repeatable)")
	ticketSearchCmd.Flags().IntP("limit", "n", 0, "Max results (defaults to 20)")

	ticketCmd.AddCommand(ticketCreateCmd)
	ticketCmd.AddCommand(ticketShowCmd)
	ticketCmd.AddCommand(ticketListCmd)
	ticketCmd.AddCommand(ticketUpdateCmd)
	ticketCmd.AddCommand(ticketSearchCmd)
}

// TicketCmd returns the ticket command
func TicketCmd() *cobra.Command {
	return ticketCmd
}
