// Package primary defines the primary ports (driving adapters) for the
// application: the operation surface the CLI and any tool-dispatch
// layer call into. Services return full, untruncated domain objects;
// pagination and formatting belong to the caller.
package primary

import "context"

// OrgService defines the primary port for organization operations.
type OrgService interface {
	// CreateOrg creates a new org with a generated ID.
	CreateOrg(ctx context.Context, req CreateOrgRequest) (*Org, error)

	// CreateOrgWithID idempotently upserts an org under a caller-chosen
	// ID (migration replay). Case-insensitive duplicates resolve to the
	// already-stored record.
	CreateOrgWithID(ctx context.Context, req CreateOrgWithIDRequest) (*Org, error)

	// GetOrg retrieves an org case-insensitively. Returns (nil, nil)
	// when no org matches.
	GetOrg(ctx context.Context, orgID string) (*Org, error)

	// ListOrgs lists all orgs ordered by name.
	ListOrgs(ctx context.Context) ([]*Org, error)
}

// CreateOrgRequest contains parameters for creating an org.
type CreateOrgRequest struct {
	Name string
}

// CreateOrgWithIDRequest contains parameters for a replay-safe org create.
type CreateOrgWithIDRequest struct {
	ID        string
	Name      string
	CreatedAt string // optional RFC 3339; defaults to now
}

// Org represents an organization at the port boundary.
type Org struct {
	ID        string
	Name      string
	CreatedAt string
}
