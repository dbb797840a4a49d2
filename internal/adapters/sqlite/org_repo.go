package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpm/internal/core/identity"
	"github.com/example/tpm/internal/ports/secondary"
)

// OrgRepository implements secondary.OrgRepository with SQLite.
type OrgRepository struct {
	db *sql.DB
}

// NewOrgRepository creates a new SQLite org repository.
func NewOrgRepository(db *sql.DB) *OrgRepository {
	return &OrgRepository{db: db}
}

// Create persists a new org.
func (r *OrgRepository) Create(ctx context.Context, org *secondary.OrgRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO orgs (id, name, created_at) VALUES (?, ?, ?)",
		org.ID, org.Name, org.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create org: %w", err)
	}
	return nil
}

// Upsert inserts or replaces an org by ID.
func (r *OrgRepository) Upsert(ctx context.Context, org *secondary.OrgRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO orgs (id, name, created_at) VALUES (?, ?, ?)",
		org.ID, org.Name, org.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert org: %w", err)
	}
	return nil
}

// GetByID retrieves an org by its ID, case-insensitively.
func (r *OrgRepository) GetByID(ctx context.Context, id string) (*secondary.OrgRecord, error) {
	record := &secondary.OrgRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM orgs WHERE LOWER(id) = ?",
		identity.Normalize(id),
	).Scan(&record.ID, &record.Name, &record.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get org: %w", err)
	}
	return record, nil
}

// List retrieves all orgs ordered by name.
func (r *OrgRepository) List(ctx context.Context) ([]*secondary.OrgRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM orgs ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orgs: %w", err)
	}
	defer rows.Close()

	var orgs []*secondary.OrgRecord
	for rows.Next() {
		record := &secondary.OrgRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan org: %w", err)
		}
		orgs = append(orgs, record)
	}
	return orgs, rows.Err()
}

// ResolveID returns the stored casing of an org ID matched
// case-insensitively, or "" when no org matches.
func (r *OrgRepository) ResolveID(ctx context.Context, id string) (string, error) {
	var stored string
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM orgs WHERE LOWER(id) = ?",
		identity.Normalize(id),
	).Scan(&stored)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve org id: %w", err)
	}
	return stored, nil
}

// DeleteAll removes every org.
func (r *OrgRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM orgs"); err != nil {
		return fmt.Errorf("failed to clear orgs: %w", err)
	}
	return nil
}

// Ensure OrgRepository implements the interface
var _ secondary.OrgRepository = (*OrgRepository)(nil)
