package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/wire"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage organizations",
	Long:  "Create, list, and inspect organizations, the top level of the tpm hierarchy",
}

var orgCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new org",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := wire.OrgService().CreateOrg(cmd.Context(), primary.CreateOrgRequest{
			Name: args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to create org: %w", err)
		}

		fmt.Printf("✓ Created org %s: %s\n", org.ID, org.Name)
		return nil
	},
}

var orgShowCmd = &cobra.Command{
	Use:   "show [org-id]",
	Short: "Show org details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := wire.OrgService().GetOrg(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get org: %w", err)
		}
		if org == nil {
			return fmt.Errorf("org %s not found", args[0])
		}

		fmt.Printf("Org: %s\n", org.ID)
		fmt.Printf("Name: %s\n", org.Name)
		fmt.Printf("Created: %s\n", org.CreatedAt)
		return nil
	},
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orgs",
	RunE: func(cmd *cobra.Command, args []string) error {
		orgs, err := wire.OrgService().ListOrgs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list orgs: %w", err)
		}

		if len(orgs) == 0 {
			fmt.Println("No orgs found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCREATED")
		fmt.Fprintln(w, "--\t----\t-------")
		for _, o := range orgs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", o.ID, o.Name, o.CreatedAt)
		}
		w.Flush()
		return nil
	},
}

func init() {
	orgCmd.AddCommand(orgCreateCmd)
	orgCmd.AddCommand(orgShowCmd)
	orgCmd.AddCommand(orgListCmd)
}

// OrgCmd returns the org command
func OrgCmd() *cobra.Command {
	return orgCmd
}
