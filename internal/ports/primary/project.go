package primary

import "context"

// ProjectService defines the primary port for project operations.
type ProjectService interface {
	// CreateProject creates a new project with a generated ID. The org
	// reference is resolved case-insensitively; an unknown org ID is
	// adopted in normalized form rather than rejected.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)

	// CreateProjectWithID idempotently upserts a project under a
	// caller-chosen ID (migration replay).
	CreateProjectWithID(ctx context.Context, req CreateProjectWithIDRequest) (*Project, error)

	// GetProject retrieves a project case-insensitively. Returns
	// (nil, nil) when no project matches.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// ListProjects lists projects ordered by name, optionally filtered
	// to an org (case-insensitive).
	ListProjects(ctx context.Context, orgID string) ([]*Project, error)
}

// CreateProjectRequest contains parameters for creating a project.
type CreateProjectRequest struct {
	OrgID       string
	Name        string
	RepoPath    string // optional
	Description string // optional
}

// CreateProjectWithIDRequest contains parameters for a replay-safe
// project create.
type CreateProjectWithIDRequest struct {
	ID          string
	OrgID       string
	Name        string
	RepoPath    string
	Description string
	CreatedAt   string // optional RFC 3339; defaults to now
}

// Project represents a project at the port boundary.
type Project struct {
	ID          string
	OrgID       string
	Name        string
	RepoPath    string
	Description string
	CreatedAt   string
}
