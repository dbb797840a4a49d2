package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpm/internal/core/identity"
	"github.com/example/tpm/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, org_id, name, repo_path, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		project.ID, project.OrgID, project.Name,
		nullable(project.RepoPath), nullable(project.Description), project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Upsert inserts or replaces a project by ID.
func (r *ProjectRepository) Upsert(ctx context.Context, project *secondary.ProjectRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO projects (id, org_id, name, repo_path, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		project.ID, project.OrgID, project.Name,
		nullable(project.RepoPath), nullable(project.Description), project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by its ID, case-insensitively.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	var repoPath, description sql.NullString
	record := &secondary.ProjectRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, org_id, name, repo_path, description, created_at
		 FROM projects WHERE LOWER(id) = ?`,
		identity.Normalize(id),
	).Scan(&record.ID, &record.OrgID, &record.Name, &repoPath, &description, &record.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	record.RepoPath = repoPath.String
	record.Description = description.String
	return record, nil
}

// List retrieves projects ordered by name, optionally filtered to an
// org (case-insensitive).
func (r *ProjectRepository) List(ctx context.Context, orgID string) ([]*secondary.ProjectRecord, error) {
	query := `SELECT id, org_id, name, repo_path, description, created_at FROM projects`
	args := []any{}
	if orgID != "" {
		query += " WHERE LOWER(org_id) = ?"
		args = append(args, identity.Normalize(orgID))
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*secondary.ProjectRecord
	for rows.Next() {
		var repoPath, description sql.NullString
		record := &secondary.ProjectRecord{}
		err := rows.Scan(&record.ID, &record.OrgID, &record.Name, &repoPath, &description, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		record.RepoPath = repoPath.String
		record.Description = description.String
		projects = append(projects, record)
	}
	return projects, rows.Err()
}

// ResolveID returns the stored casing of a project ID matched
// case-insensitively, or "" when no project matches.
func (r *ProjectRepository) ResolveID(ctx context.Context, id string) (string, error) {
	var stored string
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM projects WHERE LOWER(id) = ?",
		identity.Normalize(id),
	).Scan(&stored)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve project id: %w", err)
	}
	return stored, nil
}

// DeleteAll removes every project.
func (r *ProjectRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}
	return nil
}

// nullable converts an empty string to NULL for optional TEXT columns.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
