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

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  "Create, list, and update tasks within a ticket, and track dependencies between them",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticketID, _ := cmd.Flags().GetString("ticket")
		details, _ := cmd.Flags().GetString("details")
		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")
		complexity, _ := cmd.Flags().GetString("complexity")
		criteria, _ := cmd.Flags().GetStringSlice("criteria")

		task, err := wire.TaskService().CreateTask(cmd.Context(), primary.CreateTaskRequest{
			TicketID:           ticketID,
			Title:              args[0],
			Details:            details,
			Status:             status,
			Priority:           priority,
			Complexity:         complexity,
			AcceptanceCriteria: criteria,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("✓ Created task %s: %s\n", task.ID, task.Title)
		fmt.Printf("  Ticket: %s\n", task.TicketID)
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := wire.TaskService().GetTask(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}
		if task == nil {
			return fmt.Errorf("task %s not found", args[0])
		}

		fmt.Printf("Task: %s\n", task.ID)
		fmt.Printf("Title: %s\n", task.Title)
		fmt.Printf("Ticket: %s\n", task.TicketID)
		fmt.Printf("Status: %s\n", task.Status)
		fmt.Printf("Priority: %s  Complexity: %s\n", task.Priority, task.Complexity)
		if task.Details != "" {
			fmt.Printf("Details: %s\n", task.Details)
		}
		if len(task.AcceptanceCriteria) > 0 {
			fmt.Println("Acceptance criteria:")
			for _, c := range task.AcceptanceCriteria {
				fmt.Printf("  - %s\n", c)
			}
		}
		fmt.Printf("Created: %s\n", task.CreatedAt)
		if task.CompletedAt != "" {
			fmt.Printf("Completed: %s\n", task.CompletedAt)
		}

		deps, err := wire.TaskService().GetDependencies(cmd.Context(), task.ID)
		if err != nil {
			return fmt.Errorf("failed to get dependencies: %w", err)
		}
		if len(deps) > 0 {
			fmt.Printf("Depends on: %s\n", strings.Join(deps, ", "))
		}
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ticketID, _ := cmd.Flags().GetString("ticket")
		status, _ := cmd.Flags().GetString("status")

		tasks, err := wire.TaskService().ListTasks(cmd.Context(), primary.TaskFilters{
			TicketID: ticketID,
			Status:   status,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tTICKET")
		fmt.Fprintln(w, "--\t-----\t------\t--------\t------")
		for _, t := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, t.TicketID)
		}
		w.Flush()
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update task fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.UpdateTaskRequest{TaskID: args[0]}

		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			req.Title = &v
		}
		if cmd.Flags().Changed("details") {
			v, _ := cmd.Flags().GetString("details")
			req.Details = &v
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			req.Status = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			req.Priority = &v
		}
		if cmd.Flags().Changed("complexity") {
			v, _ := cmd.Flags().GetString("complexity")
			req.Complexity = &v
		}

		if req.Title == nil && req.Details == nil && req.Status == nil &&
			req.Priority == nil && req.Complexity == nil {
			return fmt.Errorf("nothing to update\nHint: pass at least one of --title, --details, --status, --priority, --complexity")
		}

		task, err := wire.TaskService().UpdateTask(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		if task == nil {
			return fmt.Errorf("task %s not found", args[0])
		}

		fmt.Printf("✓ Task %s updated\n", task.ID)
		fmt.Printf("  Status: %s\n", task.Status)
		return nil
	},
}

var taskDependCmd = &cobra.Command{
	Use:   "depend [task-id] [depends-on-id]",
	Short: "Record that a task depends on another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		added, err := wire.TaskService().AddDependency(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to add dependency: %w", err)
		}

		if added {
			fmt.Printf("✓ %s now depends on %s\n", args[0], args[1])
		} else {
			fmt.Printf("%s already depends on %s\n", args[0], args[1])
		}
		return nil
	},
}

var taskDepsCmd = &cobra.Command{
	Use:   "deps [task-id]",
	Short: "List a task's dependencies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := wire.TaskService().GetDependencies(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get dependencies: %w", err)
		}

		if len(deps) == 0 {
			fmt.Println("No dependencies")
			return nil
		}
		for _, d := range deps {
			fmt.Println(d)
		}
		return nil
	},
}

func init() {
	// task create flags
	taskCreateCmd.Flags().StringP("ticket", "t", "", "Ticket ID the task belongs to")
	taskCreateCmd.Flags().StringP("details", "d", "", "Task details")
	taskCreateCmd.Flags().String("status", "", "Initial status (defaults to pending)")
	taskCreateCmd.Flags().String("priority", "", "Priority (defaults to medium)")
	taskCreateCmd.Flags().String("complexity", "", "Complexity (defaults to medium)")
	taskCreateCmd.Flags().StringSlice("criteria", nil, "Acceptance criterion (repeatable)")
	taskCreateCmd.MarkFlagRequired("ticket")

	// task list flags
	taskListCmd.Flags().StringP("ticket", "t", "", "Filter by ticket")
	taskListCmd.Flags().String("status", "", "Filter by status")

	// task update flags
	taskUpdateCmd.Flags().String("title", "", "New title")
	taskUpdateCmd.Flags().StringP("details", "d", "", "New details")
	taskUpdateCmd.Flags().String("status", "", "New status")
	taskUpdateCmd.Flags().String("priority", "", "New priority")
	taskUpdateCmd.Flags().String("complexity", "", "New complexity")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDependCmd)
	taskCmd.AddCommand(taskDepsCmd)
}

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	return taskCmd
}
