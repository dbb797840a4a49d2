package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tpm/internal/core/lifecycle"
	"github.com/example/tpm/internal/core/ticketid"
	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo   secondary.TaskRepository
	ticketRepo secondary.TicketRepository
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(taskRepo secondary.TaskRepository, ticketRepo secondary.TicketRepository) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo:   taskRepo,
		ticketRepo: ticketRepo,
	}
}

// CreateTask creates a new task numbered within its parent ticket. The
// parent must exist: numbering derives from the ticket's ID and task
// count, so this is the one create that fails hard on a missing parent.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s not found", req.TicketID)
	}

	count, err := s.taskRepo.CountForTicket(ctx, ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	id := ticketid.TaskID(ticket.ID, count+1)

	record := &secondary.TaskRecord{
		ID:                 id,
		TicketID:           ticket.ID,
		Title:              req.Title,
		Details:            req.Details,
		Status:             taskStatusOrDefault(req.Status),
		Priority:           priorityOrDefault(req.Priority),
		Complexity:         complexityOrDefault(req.Complexity),
		CreatedAt:          nowStamp(),
		AcceptanceCriteria: req.AcceptanceCriteria,
		Metadata:           req.Metadata,
	}
	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return taskFromRecord(record), nil
}

// CreateTaskWithID idempotently upserts a task under a caller-chosen ID
// (migration replay). The parent is not checked here; import order is
// the caller's concern.
func (s *TaskServiceImpl) CreateTaskWithID(ctx context.Context, req primary.CreateTaskWithIDRequest) (*primary.Task, error) {
	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = nowStamp()
	}

	record := &secondary.TaskRecord{
		ID:                 req.ID,
		TicketID:           req.TicketID,
		Title:              req.Title,
		Details:            req.Details,
		Status:             taskStatusOrDefault(req.Status),
		Priority:           priorityOrDefault(req.Priority),
		Complexity:         complexityOrDefault(req.Complexity),
		CreatedAt:          createdAt,
		CompletedAt:        req.CompletedAt,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Metadata:           req.Metadata,
	}
	if err := s.taskRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert task: %w", err)
	}
	return taskFromRecord(record), nil
}

// GetTask retrieves a task by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID string) (*primary.Task, error) {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	return taskFromRecord(record), nil
}

// ListTasks lists tasks matching the filters. The status filter accepts
// the legacy completed alias.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filters primary.TaskFilters) ([]*primary.Task, error) {
	records, err := s.taskRepo.List(ctx, secondary.TaskFilters{
		TicketID: filters.TicketID,
		Status:   lifecycle.Normalize(filters.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = taskFromRecord(r)
	}
	return tasks, nil
}

// UpdateTask applies a partial update. A status change into done stamps
// completed_at; tasks carry no started_at.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) (*primary.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	update := &secondary.TaskUpdateRecord{
		Title:              req.Title,
		Details:            req.Details,
		Priority:           req.Priority,
		Complexity:         req.Complexity,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Metadata:           req.Metadata,
	}

	if req.Status != nil {
		transition := lifecycle.ApplyTaskTransition(*req.Status, time.Now().UTC())
		update.Status = &transition.Status
		if transition.CompletedAt != nil {
			stamp := transition.CompletedAt.Format(time.RFC3339)
			update.CompletedAt = &stamp
		}
	}

	if err := s.taskRepo.Update(ctx, req.TaskID, update); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated task: %w", err)
	}
	return taskFromRecord(updated), nil
}

// AddDependency records that a task depends on another. A duplicate
// edge reports false rather than failing. No cycle detection.
func (s *TaskServiceImpl) AddDependency(ctx context.Context, taskID, dependsOnID string) (bool, error) {
	return s.taskRepo.AddDependency(ctx, taskID, dependsOnID)
}

// GetDependencies returns the IDs of tasks the given task depends on.
func (s *TaskServiceImpl) GetDependencies(ctx context.Context, taskID string) ([]string, error) {
	return s.taskRepo.Dependencies(ctx, taskID)
}

func taskStatusOrDefault(status string) string {
	if status == "" {
		return lifecycle.InitialTaskStatus()
	}
	return lifecycle.Normalize(status)
}

func priorityOrDefault(priority string) string {
	if priority == "" {
		return lifecycle.DefaultPriority()
	}
	return priority
}

func complexityOrDefault(complexity string) string {
	if complexity == "" {
		return lifecycle.DefaultComplexity()
	}
	return complexity
}

func taskFromRecord(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
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
	}
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
