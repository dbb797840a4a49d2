package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpm/internal/ports/secondary"
)

// NoteRepository implements secondary.NoteRepository with SQLite.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new SQLite note repository.
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create persists a new note.
func (r *NoteRepository) Create(ctx context.Context, note *secondary.NoteRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, entity_type, entity_id, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.EntityType, note.EntityID, note.Content, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// GetByID retrieves a note by its ID.
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*secondary.NoteRecord, error) {
	record := &secondary.NoteRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, entity_type, entity_id, content, created_at FROM notes WHERE id = ?", id,
	).Scan(&record.ID, &record.EntityType, &record.EntityID, &record.Content, &record.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return record, nil
}

// ListForEntity retrieves notes for an entity ordered by created_at.
func (r *NoteRepository) ListForEntity(ctx context.Context, entityType, entityID string) ([]*secondary.NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entity_type, entity_id, content, created_at
		 FROM notes WHERE entity_type = ? AND entity_id = ? ORDER BY created_at`,
		entityType, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

// List retrieves all notes ordered by created_at.
func (r *NoteRepository) List(ctx context.Context) ([]*secondary.NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, entity_type, entity_id, content, created_at FROM notes ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

// DeleteAll removes every note.
func (r *NoteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM notes"); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	return nil
}

func collectNotes(rows *sql.Rows) ([]*secondary.NoteRecord, error) {
	var notes []*secondary.NoteRecord
	for rows.Next() {
		record := &secondary.NoteRecord{}
		err := rows.Scan(&record.ID, &record.EntityType, &record.EntityID, &record.Content, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, record)
	}
	return notes, rows.Err()
}

// Ensure NoteRepository implements the interface
var _ secondary.NoteRepository = (*NoteRepository)(nil)
