package primary

import "context"

// NoteService defines the primary port for note operations. Notes
// attach to any entity by type and ID; the target is not checked for
// existence.
type NoteService interface {
	// AddNote attaches a note to an entity.
	AddNote(ctx context.Context, req AddNoteRequest) (*Note, error)

	// GetNote retrieves a note by ID. Returns (nil, nil) when no note
	// matches.
	GetNote(ctx context.Context, noteID string) (*Note, error)

	// ListNotes lists an entity's notes ordered by created_at.
	ListNotes(ctx context.Context, entityType, entityID string) ([]*Note, error)
}

// AddNoteRequest contains parameters for attaching a note.
type AddNoteRequest struct {
	EntityType string // org, project, ticket, task
	EntityID   string
	Content    string
	CreatedAt  string // optional RFC 3339; defaults to now (import replay)
}

// Note represents a note at the port boundary.
type Note struct {
	ID         string
	EntityType string
	EntityID   string
	Content    string
	CreatedAt  string
}
