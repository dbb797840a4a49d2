package primary

import "context"

// TicketService defines the primary port for ticket operations.
type TicketService interface {
	// CreateTicket creates a new ticket with a derived sequential ID.
	// The prefix comes from the request, or from the parent project's
	// canonical ID, or falls back to TICKET.
	CreateTicket(ctx context.Context, req CreateTicketRequest) (*Ticket, error)

	// CreateTicketWithID idempotently upserts a ticket under a
	// caller-chosen ID (migration replay). The legacy completed status
	// is normalized before storage.
	CreateTicketWithID(ctx context.Context, req CreateTicketWithIDRequest) (*Ticket, error)

	// GetTicket retrieves a ticket by ID. Returns (nil, nil) when no
	// ticket matches.
	GetTicket(ctx context.Context, ticketID string) (*Ticket, error)

	// ListTickets lists tickets matching the filters, ordered by
	// (priority, created_at).
	ListTickets(ctx context.Context, filters TicketFilters) ([]*Ticket, error)

	// UpdateTicket applies a partial update. A status change stamps
	// started_at (into in-progress) or completed_at (into done).
	// Returns (nil, nil) when no ticket matches.
	UpdateTicket(ctx context.Context, req UpdateTicketRequest) (*Ticket, error)

	// SearchTickets runs a ranked full-text query. Empty queries yield
	// an empty result set; malformed query syntax degrades to the same.
	SearchTickets(ctx context.Context, req SearchTicketsRequest) ([]*SearchResult, error)
}

// CreateTicketRequest contains parameters for creating a ticket.
type CreateTicketRequest struct {
	ProjectID          string
	Title              string
	Description        string
	Status             string // defaults to backlog
	Priority           string // defaults to medium
	Prefix             string // optional ID prefix, sanitized before use
	Assignees          []string
	Tags               []string
	RelatedRepos       []string
	AcceptanceCriteria []string
	Blockers           []string
	Metadata           map[string]any
}

// CreateTicketWithIDRequest contains parameters for a replay-safe
// ticket create.
type CreateTicketWithIDRequest struct {
	ID                 string
	ProjectID          string
	Title              string
	Description        string
	Status             string // defaults to backlog
	Priority           string // defaults to medium
	CreatedAt          string // optional RFC 3339; defaults to now
	StartedAt          string
	CompletedAt        string
	Assignees          []string
	Tags               []string
	RelatedRepos       []string
	AcceptanceCriteria []string
	Blockers           []string
	Metadata           map[string]any
}

// UpdateTicketRequest contains a partial ticket update. Nil fields are
// left unchanged.
type UpdateTicketRequest struct {
	TicketID           string
	Title              *string
	Description        *string
	Status             *string
	Priority           *string
	Assignees          *[]string
	Tags               *[]string
	RelatedRepos       *[]string
	AcceptanceCriteria *[]string
	Blockers           *[]string
	Metadata           *map[string]any
}

// TicketFilters contains filter options for listing tickets.
type TicketFilters struct {
	ProjectID string // case-insensitive
	Status    string
}

// SearchTicketsRequest describes a full-text ticket search.
type SearchTicketsRequest struct {
	Query     string
	ProjectID string   // case-insensitive filter
	Status    string   // exact filter
	Priority  string   // exact filter
	Tags      []string // ticket must carry all of these
	Limit     int      // defaults to 20
}

// SearchResult is one ranked search hit with a highlighted snippet.
type SearchResult struct {
	TicketID  string
	Title     string
	ProjectID string
	Status    string
	Priority  string
	Tags      []string
	Snippet   string
}

// Ticket represents a ticket at the port boundary.
type Ticket struct {
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
