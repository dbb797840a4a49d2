package primary

import "context"

// TaskService defines the primary port for task operations.
type TaskService interface {
	// CreateTask creates a new task numbered within its parent ticket.
	// Fails if the ticket does not exist - numbering cannot proceed
	// without a parent.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)

	// CreateTaskWithID idempotently upserts a task under a
	// caller-chosen ID (migration replay).
	CreateTaskWithID(ctx context.Context, req CreateTaskWithIDRequest) (*Task, error)

	// GetTask retrieves a task by ID. Returns (nil, nil) when no task
	// matches.
	GetTask(ctx context.Context, taskID string) (*Task, error)

	// ListTasks lists tasks matching the filters, ordered by created_at.
	ListTasks(ctx context.Context, filters TaskFilters) ([]*Task, error)

	// UpdateTask applies a partial update. A status change into done
	// stamps completed_at. Returns (nil, nil) when no task matches.
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*Task, error)

	// AddDependency records that a task depends on another. Returns
	// false when the edge already exists (benign, not an error). No
	// cycle detection is performed.
	AddDependency(ctx context.Context, taskID, dependsOnID string) (bool, error)

	// GetDependencies returns the IDs of tasks the given task depends on.
	GetDependencies(ctx context.Context, taskID string) ([]string, error)
}

// CreateTaskRequest contains parameters for creating a task.
type CreateTaskRequest struct {
	TicketID           string
	Title              string
	Details            string
	Status             string // defaults to pending
	Priority           string // defaults to medium
	Complexity         string // defaults to medium
	AcceptanceCriteria []string
	Metadata           map[string]any
}

// CreateTaskWithIDRequest contains parameters for a replay-safe task
// create.
type CreateTaskWithIDRequest struct {
	ID                 string
	TicketID           string
	Title              string
	Details            string
	Status             string // defaults to pending
	Priority           string // defaults to medium
	Complexity         string // defaults to medium
	CreatedAt          string // optional RFC 3339; defaults to now
	CompletedAt        string
	AcceptanceCriteria []string
	Metadata           map[string]any
}

// UpdateTaskRequest contains a partial task update. Nil fields are left
// unchanged.
type UpdateTaskRequest struct {
	TaskID             string
	Title              *string
	Details            *string
	Status             *string
	Priority           *string
	Complexity         *string
	AcceptanceCriteria *[]string
	Metadata           *map[string]any
}

// TaskFilters contains filter options for listing tasks.
type TaskFilters struct {
	TicketID string
	Status   string
}

// Task represents a task at the port boundary.
type Task struct {
	ID                 string
	TicketID           string
	Title              string
	Details            string
	Status             string
	Priority           string
	Complexity         string
	CreatedAt          string
	CompletedAt        string
	AcceptanceCriteria []string
	Metadata           map[string]any
}
