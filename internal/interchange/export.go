package interchange

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tpm/internal/ports/secondary"
)

// Exporter builds interchange bundles from the repositories.
type Exporter struct {
	orgRepo     secondary.OrgRepository
	projectRepo secondary.ProjectRepository
	ticketRepo  secondary.TicketRepository
	taskRepo    secondary.TaskRepository
	noteRepo    secondary.NoteRepository
}

// NewExporter creates a new Exporter with injected dependencies.
func NewExporter(
	orgRepo secondary.OrgRepository,
	projectRepo secondary.ProjectRepository,
	ticketRepo secondary.TicketRepository,
	taskRepo secondary.TaskRepository,
	noteRepo secondary.NoteRepository,
) *Exporter {
	return &Exporter{
		orgRepo:     orgRepo,
		projectRepo: projectRepo,
		ticketRepo:  ticketRepo,
		taskRepo:    taskRepo,
		noteRepo:    noteRepo,
	}
}

// ExportBundle snapshots the whole database into a bundle. Slices are
// always non-nil so the JSON document carries every section, empty or
// not.
func (e *Exporter) ExportBundle(ctx context.Context) (*Bundle, error) {
	bundle := &Bundle{
		ExportedAt:       time.Now().UTC().Format(time.RFC3339),
		Orgs:             []Org{},
		Projects:         []Project{},
		Tickets:          []Ticket{},
		Tasks:            []Task{},
		Notes:            []Note{},
		TaskDependencies: []Dependency{},
	}

	orgs, err := e.orgRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export orgs: %w", err)
	}
	for _, r := range orgs {
		bundle.Orgs = append(bundle.Orgs, Org{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt})
	}

	projects, err := e.projectRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to export projects: %w", err)
	}
	for _, r := range projects {
		bundle.Projects = append(bundle.Projects, Project{
			ID:          r.ID,
			OrgID:       r.OrgID,
			Name:        r.Name,
			RepoPath:    r.RepoPath,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		})
	}

	tickets, err := e.ticketRepo.List(ctx, secondary.TicketFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to export tickets: %w", err)
	}
	for _, r := range tickets {
		bundle.Tickets = append(bundle.Tickets, Ticket{
			ID:                 r.ID,
			ProjectID:          r.ProjectID,
			Title:              r.Title,
			Description:        r.Description,
			Status:             r.Status,
			Priority:           r.Priority,
			CreatedAt:          r.CreatedAt,
			StartedAt:          r.StartedAt,
			CompletedAt:        r.CompletedAt,
			Assignees:          r.Assignees,
			Tags:               r.Tags,
			RelatedRepos:       r.RelatedRepos,
			AcceptanceCriteria: r.AcceptanceCriteria,
			Blockers:           r.Blockers,
			Metadata:           r.Metadata,
		})
	}

	tasks, err := e.taskRepo.List(ctx, secondary.TaskFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to export tasks: %w", err)
	}
	for _, r := range tasks {
		bundle.Tasks = append(bundle.Tasks, Task{
			ID:                 r.ID,
			TicketID:           r.TicketID,
			Title:              r.Title,
			Details:            r.Details,
			Status:             r.Status,
			Priority:           r.Priority,
			Complexity:         r.Complexity,
			CreatedAt:          r.CreatedAt,
			CompletedAt:        r.CompletedAt,
			AcceptanceCriteria: r.AcceptanceCriteria,
			Metadata:           r.Metadata,
		})
	}

	notes, err := e.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export notes: %w", err)
	}
	for _, r := range notes {
		bundle.Notes = append(bundle.Notes, Note{
			ID:         r.ID,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Content:    r.Content,
			CreatedAt:  r.CreatedAt,
		})
	}

	edges, err := e.taskRepo.AllDependencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export task dependencies: %w", err)
	}
	for _, edge := range edges {
		bundle.TaskDependencies = append(bundle.TaskDependencies, Dependency{
			TaskID:      edge.TaskID,
			DependsOnID: edge.DependsOnID,
		})
	}

	return bundle, nil
}
