// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
//
// Lookup methods return (nil, nil) when the record is absent: missing
// entities surface as not-found values, never as errors. Only storage
// failures produce errors.
package secondary

import "context"

// OrgRepository defines the secondary port for organization persistence.
type OrgRepository interface {
	// Create persists a new org.
	Create(ctx context.Context, org *OrgRecord) error

	// Upsert inserts or replaces an org by ID (replay-safe create).
	Upsert(ctx context.Context, org *OrgRecord) error

	// GetByID retrieves an org by its ID, case-insensitively.
	GetByID(ctx context.Context, id string) (*OrgRecord, error)

	// List retrieves all orgs ordered by name.
	List(ctx context.Context) ([]*OrgRecord, error)

	// ResolveID returns the stored casing of an org ID matched
	// case-insensitively, or "" when no org matches.
	ResolveID(ctx context.Context, id string) (string, error)

	// DeleteAll removes every org (bulk clear before re-import).
	DeleteAll(ctx context.Context) error
}

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *ProjectRecord) error

	// Upsert inserts or replaces a project by ID (replay-safe create).
	Upsert(ctx context.Context, project *ProjectRecord) error

	// GetByID retrieves a project by its ID, case-insensitively.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// List retrieves projects ordered by name, optionally filtered to
	// an org (case-insensitive).
	List(ctx context.Context, orgID string) ([]*ProjectRecord, error)

	// ResolveID returns the stored casing of a project ID matched
	// case-insensitively, or "" when no project matches.
	ResolveID(ctx context.Context, id string) (string, error)

	// DeleteAll removes every project (bulk clear before re-import).
	DeleteAll(ctx context.Context) error
}

// TicketRepository defines the secondary port for ticket persistence.
type TicketRepository interface {
	// Create persists a new ticket.
	Create(ctx context.Context, ticket *TicketRecord) error

	// Upsert inserts or updates a ticket by ID (replay-safe create).
	Upsert(ctx context.Context, ticket *TicketRecord) error

	// GetByID retrieves a ticket by its exact ID.
	GetByID(ctx context.Context, id string) (*TicketRecord, error)

	// List retrieves tickets matching the given filters, ordered by
	// (priority, created_at).
	List(ctx context.Context, filters TicketFilters) ([]*TicketRecord, error)

	// Update applies a partial update; nil fields are left untouched.
	Update(ctx context.Context, id string, update *TicketUpdateRecord) error

	// ListIDsByPrefix returns all ticket IDs matching "{prefix}-%",
	// for scoped sequential numbering.
	ListIDsByPrefix(ctx context.Context, prefix string) ([]string, error)

	// Search runs a ranked full-text query with conjunctive filters.
	// Malformed query syntax degrades to an empty result set.
	Search(ctx context.Context, query SearchQuery) ([]*SearchHit, error)

	// DeleteAll removes every ticket (bulk clear before re-import).
	DeleteAll(ctx context.Context) error
}

// TaskRepository defines the secondary port for task persistence,
// including the dependency edge list.
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *TaskRecord) error

	// Upsert inserts or replaces a task by ID (replay-safe create).
	Upsert(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task by its exact ID.
	GetByID(ctx context.Context, id string) (*TaskRecord, error)

	// List retrieves tasks matching the given filters, ordered by
	// created_at.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// Update applies a partial update; nil fields are left untouched.
	Update(ctx context.Context, id string, update *TaskUpdateRecord) error

	// CountForTicket returns the number of tasks under a ticket, for
	// per-ticket task numbering.
	CountForTicket(ctx context.Context, ticketID string) (int, error)

	// AddDependency inserts a dependency edge. Returns false (not an
	// error) when the edge already exists.
	AddDependency(ctx context.Context, taskID, dependsOnID string) (bool, error)

	// Dependencies returns the IDs of tasks that taskID depends on.
	Dependencies(ctx context.Context, taskID string) ([]string, error)

	// AllDependencies returns every dependency edge (for export).
	AllDependencies(ctx context.Context) ([]*DependencyRecord, error)

	// DeleteAll removes every task (bulk clear before re-import).
	DeleteAll(ctx context.Context) error

	// DeleteAllDependencies removes every dependency edge.
	DeleteAllDependencies(ctx context.Context) error
}

// NoteRepository defines the secondary port for note persistence.
type NoteRepository interface {
	// Create persists a new note.
	Create(ctx context.Context, note *NoteRecord) error

	// GetByID retrieves a note by its ID.
	GetByID(ctx context.Context, id string) (*NoteRecord, error)

	// ListForEntity retrieves notes for an entity ordered by created_at.
	ListForEntity(ctx context.Context, entityType, entityID string) ([]*NoteRecord, error)

	// List retrieves all notes (for export).
	List(ctx context.Context) ([]*NoteRecord, error)

	// DeleteAll removes every note (bulk clear before re-import).
	DeleteAll(ctx context.Context) error
}

// OrgRecord represents an org as stored in persistence.
type OrgRecord struct {
	ID        string
	Name      string
	CreatedAt string
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID          string
	OrgID       string
	Name        string
	RepoPath    string
	Description string
	CreatedAt   string
}

// TicketRecord represents a ticket as stored in persistence.
// List-valued fields and metadata round-trip through JSON TEXT columns.
type TicketRecord struct {
	ID                 string
	ProjectID          string
	Title              string
	Description        string
	Status             string
	Priority           string
	CreatedAt          string
	StartedAt          string
	CompletedAt        string
	Assignees          []string
	Tags               []string
	RelatedRepos       []string
	AcceptanceCriteria []string
	Blockers           []string
	Metadata           map[string]any
}

// TicketUpdateRecord carries a partial ticket update. Nil pointers mean
// "leave unchanged". Status arrives already normalized; the timestamp
// stamps are computed by the caller from the transition side effects.
type TicketUpdateRecord struct {
	Title              *string
	Description        *string
	Status             *string
	StartedAt          *string
	CompletedAt        *string
	Priority           *string
	Assignees          *[]string
	Tags               *[]string
	RelatedRepos       *[]string
	AcceptanceCriteria *[]string
	Blockers           *[]string
	Metadata           *map[string]any
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
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

// TaskUpdateRecord carries a partial task update. Nil pointers mean
// "leave unchanged".
type TaskUpdateRecord struct {
	Title              *string
	Details            *string
	Status             *string
	CompletedAt        *string
	Priority           *string
	Complexity         *string
	AcceptanceCriteria *[]string
	Metadata           *map[string]any
}

// DependencyRecord is one edge of the task dependency list.
type DependencyRecord struct {
	TaskID      string
	DependsOnID string
}

// NoteRecord represents a note as stored in persistence.
type NoteRecord struct {
	ID         string
	EntityType string
	EntityID   string
	Content    string
	CreatedAt  string
}

// TicketFilters contains filter options for listing tickets.
type TicketFilters struct {
	ProjectID string // case-insensitive
	Status    string
}

// TaskFilters contains filter options for listing tasks.
type TaskFilters struct {
	TicketID string
	Status   string
}

// SearchQuery describes a ranked full-text search over tickets.
type SearchQuery struct {
	Text      string
	ProjectID string   // case-insensitive
	Status    string   // exact
	Priority  string   // exact
	Tags      []string // superset match: ticket must carry all of these
	Limit     int
}

// SearchHit is one ranked search result with a highlighted snippet.
type SearchHit struct {
	TicketID  string
	Title     string
	ProjectID string
	Status    string
	Priority  string
	Tags      []string
	Snippet   string
}
