package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "rename_features_to_tickets",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_tickets_fts_index",
		Up:      migrationV2,
	},
}

// RunMigrations executes all pending migrations on a connection
func RunMigrations(conn *sql.DB) error {
	// Create schema_version table if it doesn't exist
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TEXT DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(conn); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = conn.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 renames the legacy features table to tickets and its
// feature_id references to ticket_id (pre-rename databases used the
// feature terminology).
func migrationV1(conn *sql.DB) error {
	var hasFeatures int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='features'").Scan(&hasFeatures)
	if err != nil {
		return err
	}
	if hasFeatures == 0 {
		return nil
	}

	stmts := []string{
		"ALTER TABLE features RENAME TO tickets",
		"ALTER TABLE tasks RENAME COLUMN feature_id TO ticket_id",
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return nil
}

// migrationV2 adds the FTS5 index over ticket title+description, the
// sync triggers, and backfills existing rows.
func migrationV2(conn *sql.DB) error {
	stmts := []string{
		`CREATE VIRTUAL TABLE IF NOT EXISTS tickets_fts USING fts5(
			ticket_id UNINDEXED,
			title,
			description
		)`,
		`CREATE TRIGGER IF NOT EXISTS tickets_fts_insert AFTER INSERT ON tickets BEGIN
			INSERT INTO tickets_fts (ticket_id, title, description)
			VALUES (new.id, new.title, COALESCE(new.description, ''));
		END`,
		`CREATE TRIGGER IF NOT EXISTS tickets_fts_delete AFTER DELETE ON tickets BEGIN
			DELETE FROM tickets_fts WHERE ticket_id = old.id;
		END`,
		`CREATE TRIGGER IF NOT EXISTS tickets_fts_update AFTER UPDATE ON tickets BEGIN
			DELETE FROM tickets_fts WHERE ticket_id = old.id;
			INSERT INTO tickets_fts (ticket_id, title, description)
			VALUES (new.id, new.title, COALESCE(new.description, ''));
		END`,
		`INSERT INTO tickets_fts (ticket_id, title, description)
			SELECT id, title, COALESCE(description, '') FROM tickets
			WHERE id NOT IN (SELECT ticket_id FROM tickets_fts)`,
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute migration statement: %w", err)
		}
	}
	return nil
}
