package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/wire"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  "Create, list, and inspect projects within an organization",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orgID, _ := cmd.Flags().GetString("org")
		repoPath, _ := cmd.Flags().GetString("repo")
		description, _ := cmd.Flags().GetString("description")

		project, err := wire.ProjectService().CreateProject(cmd.Context(), primary.CreateProjectRequest{
			OrgID:       orgID,
			Name:        args[0],
			RepoPath:    repoPath,
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Printf("✓ Created project %s: %s\n", project.ID, project.Name)
		fmt.Printf("  Org: %s\n", project.OrgID)
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := wire.ProjectService().GetProject(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get project: %w", err)
		}
		if project == nil {
			return fmt.Errorf("project %s not found", args[0])
		}

		fmt.Printf("Project: %s\n", project.ID)
		fmt.Printf("Name: %s\n", project.Name)
		fmt.Printf("Org: %s\n", project.OrgID)
		if project.RepoPath != "" {
			fmt.Printf("Repo: %s\n", project.RepoPath)
		}
		if project.Description != "" {
			fmt.Printf("Description: %s\n", project.Description)
		}
		fmt.Printf("Created: %s\n", project.CreatedAt)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		orgID, _ := cmd.Flags().GetString("org")

		projects, err := wire.ProjectService().ListProjects(cmd.Context(), orgID)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		if len(projects) == 0 {
			fmt.Println("No projects found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tORG\tREPO")
		fmt.Fprintln(w, "--\t----\t---\t----")
		for _, p := range projects {
			repo := "-"
			if p.RepoPath != "" {
				repo = p.RepoPath
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.OrgID, repo)
		}
		w.Flush()
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().StringP("org", "o", "", "Org ID the project belongs to")
	projectCreateCmd.Flags().String("repo", "", "Repository path")
	projectCreateCmd.Flags().StringP("description", "d", "", "Project description")
	projectCreateCmd.MarkFlagRequired("org")

	projectListCmd.Flags().StringP("org", "o", "", "Filter by org")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectListCmd)
}

// ProjectCmd returns the project command
func ProjectCmd() *cobra.Command {
	return projectCmd
}
