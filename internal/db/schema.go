package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh tpm installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests
// use this schema via GetSchemaSQL(): if repository code references a
// column that doesn't exist here, tests fail immediately with
// "no such column" instead of drifting silently.
//
// Timestamps are stored as RFC 3339 TEXT. List-valued ticket/task
// fields (assignees, tags, ...) and metadata are stored as JSON TEXT so
// json_each() can filter on them.
const SchemaSQL = `
-- Organizations (top-level tenant grouping)
CREATE TABLE IF NOT EXISTS orgs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TEXT NOT NULL
);

-- Projects (units of work under an org, optionally bound to a repo)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	org_id TEXT NOT NULL,
	name TEXT NOT NULL,
	repo_path TEXT,
	description TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_org ON projects(org_id);

-- Tickets (epics/issues under a project)
CREATE TABLE IF NOT EXISTS tickets (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL DEFAULT 'backlog',
	priority TEXT NOT NULL DEFAULT 'medium',
	created_at TEXT NOT NULL,
	started_at TEXT,
	completed_at TEXT,
	assignees TEXT,
	tags TEXT,
	related_repos TEXT,
	acceptance_criteria TEXT,
	blockers TEXT,
	metadata TEXT
);

CREATE INDEX IF NOT EXISTS idx_tickets_project ON tickets(project_id);
CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status);

-- Tasks (decomposed units of work under a ticket)
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	ticket_id TEXT NOT NULL,
	title TEXT NOT NULL,
	details TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	priority TEXT DEFAULT 'medium',
	complexity TEXT DEFAULT 'medium',
	created_at TEXT NOT NULL,
	completed_at TEXT,
	acceptance_criteria TEXT,
	metadata TEXT
);

CREATE INDEX IF NOT EXISTS idx_tasks_ticket ON tasks(ticket_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);

-- Task dependency edges; the primary key doubles as the uniqueness
-- constraint for duplicate-edge rejection. No cycle detection.
CREATE TABLE IF NOT EXISTS task_dependencies (
	task_id TEXT NOT NULL,
	depends_on_id TEXT NOT NULL,
	PRIMARY KEY (task_id, depends_on_id)
);

-- Notes attach to any entity by (entity_type, entity_id); the target is
-- not referentially checked.
CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_entity ON notes(entity_type, entity_id);

-- Full-text index over ticket title+description. ticket_id is stored
-- but unindexed so ID fragments never pollute matches.
CREATE VIRTUAL TABLE IF NOT EXISTS tickets_fts USING fts5(
	ticket_id UNINDEXED,
	title,
	description
);

-- Keep the FTS index in sync with the tickets table. Ticket upserts go
-- through ON CONFLICT DO UPDATE (not INSERT OR REPLACE) so the update
-- trigger fires instead of leaving a stale row behind.
CREATE TRIGGER IF NOT EXISTS tickets_fts_insert AFTER INSERT ON tickets BEGIN
	INSERT INTO tickets_fts (ticket_id, title, description)
	VALUES (new.id, new.title, COALESCE(new.description, ''));
END;

CREATE TRIGGER IF NOT EXISTS tickets_fts_delete AFTER DELETE ON tickets BEGIN
	DELETE FROM tickets_fts WHERE ticket_id = old.id;
END;

CREATE TRIGGER IF NOT EXISTS tickets_fts_update AFTER UPDATE ON tickets BEGIN
	DELETE FROM tickets_fts WHERE ticket_id = old.id;
	INSERT INTO tickets_fts (ticket_id, title, description)
	VALUES (new.id, new.title, COALESCE(new.description, ''));
END;
`

// InitSchema creates the database schema on a connection.
func InitSchema(conn *sql.DB) error {
	// Check if schema_version exists to determine if this is a fresh install
	var tableCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install - create the modern schema directly and mark
		// all migrations as applied so they never run.
		if _, err := conn.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = conn.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at TEXT DEFAULT (datetime('now'))
			)
		`)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
		}
		return nil
	}

	// schema_version exists - run any pending migrations
	return RunMigrations(conn)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
