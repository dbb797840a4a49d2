package cli

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/wire"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Show the org/project/ticket/task tree with completion stats",
	Long: `Show the full work tree with roll-up statistics.

Structure:
  Org
  └── Project (tickets done/total)
      └── Ticket [status] (tasks done/total)
          └── Task

Examples:
  tpm roadmap                 # full tree
  tpm roadmap --org acme      # one org only
  tpm roadmap --tasks         # expand tasks under each ticket`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orgID, _ := cmd.Flags().GetString("org")
		expandTasks, _ := cmd.Flags().GetBool("tasks")

		roadmap, err := wire.RoadmapService().BuildRoadmap(cmd.Context(), orgID)
		if err != nil {
			return fmt.Errorf("failed to build roadmap: %w", err)
		}

		if len(roadmap.Orgs) == 0 {
			fmt.Println("No orgs found")
			return nil
		}

		for i, org := range roadmap.Orgs {
			renderOrg(org, expandTasks)
			if i < len(roadmap.Orgs)-1 {
				fmt.Println()
			}
		}

		fmt.Println()
		renderStats(roadmap.Stats)
		return nil
	},
}

func renderOrg(org *primary.OrgView, expandTasks bool) {
	fmt.Printf("%s - %s\n", colorizeID(org.ID), org.Name)

	for i, project := range org.Projects {
		isLast := i == len(org.Projects)-1
		prefix := "├── "
		childPrefix := "│   "
		if isLast {
			prefix = "└── "
			childPrefix = "    "
		}

		fmt.Printf("%s%s - %s (%d/%d tickets done)\n",
			prefix, colorizeID(project.ID), project.Name, project.TicketsDone, project.TicketCount)

		for j, ticket := range project.Tickets {
			isLastTicket := j == len(project.Tickets)-1
			tPrefix := childPrefix + "├── "
			taskPrefix := childPrefix + "│   "
			if isLastTicket {
				tPrefix = childPrefix + "└── "
				taskPrefix = childPrefix + "    "
			}

			taskInfo := ""
			if ticket.TaskCount > 0 {
				taskInfo = fmt.Sprintf(" (%d/%d tasks done)", ticket.TasksDone, ticket.TaskCount)
			}
			fmt.Printf("%s%s %s - %s%s\n",
				tPrefix, colorizeID(ticket.ID), colorizeStatus(ticket.Status), ticket.Title, taskInfo)

			if expandTasks {
				for k, task := range ticket.Tasks {
					taskMark := taskPrefix + "├── "
					if k == len(ticket.Tasks)-1 {
						taskMark = taskPrefix + "└── "
					}
					fmt.Printf("%s%s %s - %s\n",
						taskMark, colorizeID(task.ID), colorizeStatus(task.Status), task.Title)
				}
			}
		}
	}
}

func renderStats(stats primary.RoadmapStats) {
	fmt.Printf("Tickets: %d/%d done  Tasks: %d/%d done  Completion: %.1f%%\n",
		stats.TicketsDone, stats.TotalTickets, stats.TasksDone, stats.TotalTasks, stats.CompletionPct)
}

// colorizeID applies deterministic color to an ID based on its prefix,
// so all IDs of the same family render the same.
func colorizeID(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return id
	}

	h := fnv.New32a()
	h.Write([]byte(parts[0]))
	colorCode := 16 + (h.Sum32() % 216)

	return color.New(color.Attribute(38), color.Attribute(5), color.Attribute(colorCode)).Sprint(id)
}

// colorizeStatus formats a status badge with semantic color.
func colorizeStatus(status string) string {
	badge := "[" + status + "]"
	switch status {
	case "backlog", "pending":
		return color.New(color.FgHiBlack).Sprint(badge)
	case "in-progress":
		return color.New(color.FgHiBlue).Sprint(badge)
	case "blocked":
		return color.New(color.FgRed).Sprint(badge)
	case "done":
		return color.New(color.FgHiGreen).Sprint(badge)
	default:
		return badge
	}
}

func init() {
	roadmapCmd.Flags().StringP("org", "o", "", "Limit to one org")
	roadmapCmd.Flags().Bool("tasks", false, "Expand tasks under each ticket")
}

// RoadmapCmd returns the roadmap command
func RoadmapCmd() *cobra.Command {
	return roadmapCmd
}
