// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/tpm/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedOrg inserts a test org and returns its ID.
func seedOrg(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "acme"
	}
	if name == "" {
		name = "Acme"
	}
	_, err := db.Exec(
		"INSERT INTO orgs (id, name, created_at) VALUES (?, ?, '2026-01-01T00:00:00Z')",
		id, name,
	)
	if err != nil {
		t.Fatalf("failed to seed org: %v", err)
	}
	return id
}

// seedProject inserts a test project and returns its ID.
func seedProject(t *testing.T, db *sql.DB, id, orgID, name string) string {
	t.Helper()
	if id == "" {
		id = "backend"
	}
	if orgID == "" {
		orgID = "acme"
	}
	if name == "" {
		name = "Backend"
	}
	_, err := db.Exec(
		"INSERT INTO projects (id, org_id, name, created_at) VALUES (?, ?, ?, '2026-01-01T00:00:00Z')",
		id, orgID, name,
	)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// seedTicket inserts a test ticket and returns its ID.
func seedTicket(t *testing.T, db *sql.DB, id, projectID, title string) string {
	t.Helper()
	if id == "" {
		id = "TICKET-001"
	}
	if projectID == "" {
		projectID = "backend"
	}
	if title == "" {
		title = "Test Ticket"
	}
	_, err := db.Exec(
		`INSERT INTO tickets (id, project_id, title, status, priority, created_at)
		 VALUES (?, ?, ?, 'backlog', 'medium', '2026-01-01T00:00:00Z')`,
		id, projectID, title,
	)
	if err != nil {
		t.Fatalf("failed to seed ticket: %v", err)
	}
	return id
}

// seedTask inserts a test task and returns its ID.
func seedTask(t *testing.T, db *sql.DB, id, ticketID, title string) string {
	t.Helper()
	if id == "" {
		id = "TASK-001-1"
	}
	if ticketID == "" {
		ticketID = "TICKET-001"
	}
	if title == "" {
		title = "Test Task"
	}
	_, err := db.Exec(
		`INSERT INTO tasks (id, ticket_id, title, status, priority, complexity, created_at)
		 VALUES (?, ?, ?, 'pending', 'medium', 'medium', '2026-01-01T00:00:00Z')`,
		id, ticketID, title,
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return id
}
