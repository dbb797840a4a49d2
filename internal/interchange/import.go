package interchange

import (
	"context"
	"fmt"

	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/ports/secondary"
)

// ImportStats accumulates per-record outcomes of an import run. One bad
// record lands in Errors and the run keeps going.
type ImportStats struct {
	Orgs         int
	Projects     int
	Tickets      int
	Tasks        int
	Notes        int
	Dependencies int
	Errors       []string
}

// Importer replays a bundle into the store through the idempotent
// create-with-id entry points, so importing the same bundle twice
// converges instead of duplicating.
type Importer struct {
	orgService     primary.OrgService
	projectService primary.ProjectService
	ticketService  primary.TicketService
	taskService    primary.TaskService

	orgRepo     secondary.OrgRepository
	projectRepo secondary.ProjectRepository
	ticketRepo  secondary.TicketRepository
	taskRepo    secondary.TaskRepository
	noteRepo    secondary.NoteRepository
}

// NewImporter creates a new Importer with injected dependencies.
func NewImporter(
	orgService primary.OrgService,
	projectService primary.ProjectService,
	ticketService primary.TicketService,
	taskService primary.TaskService,
	orgRepo secondary.OrgRepository,
	projectRepo secondary.ProjectRepository,
	ticketRepo secondary.TicketRepository,
	taskRepo secondary.TaskRepository,
	noteRepo secondary.NoteRepository,
) *Importer {
	return &Importer{
		orgService:     orgService,
		projectService: projectService,
		ticketService:  ticketService,
		taskService:    taskService,
		orgRepo:        orgRepo,
		projectRepo:    projectRepo,
		ticketRepo:     ticketRepo,
		taskRepo:       taskRepo,
		noteRepo:       noteRepo,
	}
}

// ImportBundle loads a bundle, parent-to-child. With clear set, the
// existing data is wiped first, child-to-parent so foreign keys never
// dangle mid-wipe.
func (i *Importer) ImportBundle(ctx context.Context, bundle *Bundle, clear bool) (*ImportStats, error) {
	if clear {
		if err := i.clearAll(ctx); err != nil {
			return nil, err
		}
	}

	stats := &ImportStats{}

	for _, org := range bundle.Orgs {
		_, err := i.orgService.CreateOrgWithID(ctx, primary.CreateOrgWithIDRequest{
			ID:        org.ID,
			Name:      org.Name,
			CreatedAt: org.CreatedAt,
		})
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("org %s: %v", org.ID, err))
			continue
		}
		stats.Orgs++
	}

	for _, project := range bundle.Projects {
		_, err := i.projectService.CreateProjectWithID(ctx, primary.CreateProjectWithIDRequest{
			ID:          project.ID,
			OrgID:       project.OrgID,
			Name:        project.Name,
			RepoPath:    project.RepoPath,
			Description: project.Description,
			CreatedAt:   project.CreatedAt,
		})
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("project %s: %v", project.ID, err))
			continue
		}
		stats.Projects++
	}

	for _, ticket := range bundle.Tickets {
		_, err := i.ticketService.CreateTicketWithID(ctx, primary.CreateTicketWithIDRequest{
			ID:                 ticket.ID,
			ProjectID:          ticket.ProjectID,
			Title:              ticket.Title,
			Description:        ticket.Description,
			Status:             ticket.Status,
			Priority:           ticket.Priority,
			CreatedAt:          ticket.CreatedAt,
			StartedAt:          ticket.StartedAt,
			CompletedAt:        ticket.CompletedAt,
			Assignees:          ticket.Assignees,
			Tags:               ticket.Tags,
			RelatedRepos:       ticket.RelatedRepos,
			AcceptanceCriteria: ticket.AcceptanceCriteria,
			Blockers:           ticket.Blockers,
			Metadata:           ticket.Metadata,
		})
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("ticket %s: %v", ticket.ID, err))
			continue
		}
		stats.Tickets++
	}

	for _, task := range bundle.Tasks {
		_, err := i.taskService.CreateTaskWithID(ctx, primary.CreateTaskWithIDRequest{
			ID:                 task.ID,
			TicketID:           task.TicketID,
			Title:              task.Title,
			Details:            task.Details,
			Status:             task.Status,
			Priority:           task.Priority,
			Complexity:         task.Complexity,
			CreatedAt:          task.CreatedAt,
			CompletedAt:        task.CompletedAt,
			AcceptanceCriteria: task.AcceptanceCriteria,
			Metadata:           task.Metadata,
		})
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("task %s: %v", task.ID, err))
			continue
		}
		stats.Tasks++
	}

	// Notes go through the repository directly to keep their exported
	// IDs; the service generates fresh ones.
	for _, note := range bundle.Notes {
		existing, err := i.noteRepo.GetByID(ctx, note.ID)
		if err == nil && existing != nil {
			stats.Notes++
			continue
		}
		err = i.noteRepo.Create(ctx, &secondary.NoteRecord{
			ID:         note.ID,
			EntityType: note.EntityType,
			EntityID:   note.EntityID,
			Content:    note.Content,
			CreatedAt:  note.CreatedAt,
		})
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("note %s: %v", note.ID, err))
			continue
		}
		stats.Notes++
	}

	for _, edge := range bundle.TaskDependencies {
		_, err := i.taskService.AddDependency(ctx, edge.TaskID, edge.DependsOnID)
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("dependency %s -> %s: %v", edge.TaskID, edge.DependsOnID, err))
			continue
		}
		stats.Dependencies++
	}

	return stats, nil
}

func (i *Importer) clearAll(ctx context.Context) error {
	if err := i.taskRepo.DeleteAllDependencies(ctx); err != nil {
		return fmt.Errorf("failed to clear task dependencies: %w", err)
	}
	if err := i.noteRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	if err := i.taskRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	if err := i.ticketRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear tickets: %w", err)
	}
	if err := i.projectRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}
	if err := i.orgRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear orgs: %w", err)
	}
	return nil
}
