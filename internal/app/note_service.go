package app

import (
	"context"
	"fmt"

	"github.com/example/tpm/internal/core/identity"
	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/ports/secondary"
)

// NoteServiceImpl implements the NoteService interface.
type NoteServiceImpl struct {
	noteRepo secondary.NoteRepository
}

// NewNoteService creates a new NoteService with injected dependencies.
func NewNoteService(noteRepo secondary.NoteRepository) *NoteServiceImpl {
	return &NoteServiceImpl{noteRepo: noteRepo}
}

// AddNote attaches a note to an entity. The target is not checked for
// existence; notes on since-deleted or external entities are allowed.
func (s *NoteServiceImpl) AddNote(ctx context.Context, req primary.AddNoteRequest) (*primary.Note, error) {
	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = nowStamp()
	}

	record := &secondary.NoteRecord{
		ID:         identity.NewID(),
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Content:    req.Content,
		CreatedAt:  createdAt,
	}
	if err := s.noteRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return noteFromRecord(record), nil
}

// GetNote retrieves a note by ID.
func (s *NoteServiceImpl) GetNote(ctx context.Context, noteID string) (*primary.Note, error) {
	record, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	return noteFromRecord(record), nil
}

// ListNotes lists an entity's notes ordered by created_at.
func (s *NoteServiceImpl) ListNotes(ctx context.Context, entityType, entityID string) ([]*primary.Note, error) {
	records, err := s.noteRepo.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := make([]*primary.Note, len(records))
	for i, r := range records {
		notes[i] = noteFromRecord(r)
	}
	return notes, nil
}

func noteFromRecord(r *secondary.NoteRecord) *primary.Note {
	return &primary.Note{
		ID:         r.ID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
	}
}

// Ensure NoteServiceImpl implements the interface
var _ primary.NoteService = (*NoteServiceImpl)(nil)
