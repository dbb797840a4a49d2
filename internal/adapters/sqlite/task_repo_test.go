package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/tpm/internal/adapters/sqlite"
	"github.com/example/tpm/internal/ports/secondary"
)

func testTask(id, ticketID, title string) *secondary.TaskRecord {
	return &secondary.TaskRecord{
		ID:         id,
		TicketID:   ticketID,
		Title:      title,
		Status:     "pending",
		Priority:   "medium",
		Complexity: "medium",
		CreatedAt:  "2026-02-01T10:00:00Z",
	}
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	seedOrg(t, db, "acme", "")
	seedProject(t, db, "backend", "acme", "")
	seedTicket(t, db, "TICKET-001", "backend", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	task := testTask("TASK-001-1", "TICKET-001", "Write the handler")
	task.Details = "POST /login"
	task.AcceptanceCriteria = []string{"returns 200"}

	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "TASK-001-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected task, got nil")
	}
	if retrieved.Details != "POST /login" {
		t.Errorf("expected details 'POST /login', got '%s'", retrieved.Details)
	}
	if len(retrieved.AcceptanceCriteria) != 1 {
		t.Errorf("expected 1 acceptance criterion, got %v", retrieved.AcceptanceCriteria)
	}
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	retrieved, err := repo.GetByID(ctx, "TASK-999-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved != nil {
		t.Errorf("expected nil for missing task, got %+v", retrieved)
	}
}

func TestTaskRepository_GetByID_DefaultsLegacyNulls(t *testing.T) {
	db := setupTestDB(t)
	seedOrg(t, db, "acme", "")
	seedProject(t, db, "backend", "acme", "")
	seedTicket(t, db, "TICKET-001", "backend", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	_, err := db.Exec(
		`INSERT INTO tasks (id, ticket_id, title, status, created_at)
		 VALUES ('TASK-001-1', 'TICKET-001', 'Legacy row', 'completed', '2026-01-01T00:00:00Z')`,
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "TASK-001-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Priority != "medium" || retrieved.Complexity != "medium" {
		t.Errorf("expected defaulted priority/complexity, got %s/%s", retrieved.Priority, retrieved.Complexity)
	}
	if retrieved.Status != "done" {
		t.Errorf("expected alias collapsed to 'done', got '%s'", retrieved.Status)
	}
}

func TestTaskRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	seedOrg(t, db, "acme", "")
	seedProject(t, db, "backend", "acme", "")
	seedTicket(t, db, "TICKET-001", "backend", "")
	seedTicket(t, db, "TICKET-002", "backend", "Second")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	t1 := testTask("TASK-001-1", "TICKET-001", "One")
	t2 := testTask("TASK-001-2", "TICKET-001", "Two")
	t2.Status = "done"
	t3 := testTask("TASK-002-1", "TICKET-002", "Three")
	for _, task := range []*secondary.TaskRecord{t1, t2, t3} {
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tasks, err := repo.List(ctx, secondary.TaskFilters{TicketID: "TICKET-001"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks for TICKET-001, got %d", len(tasks))
	}

	tasks, err = repo.List(ctx, secondary.TaskFilters{TicketID: "TICKET-001", Status: "done"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "TASK-001-2" {
		t.Errorf("expected only TASK-001-2 done, got %v", tasks)
	}
}

func TestTaskRepository_Update_PartialFields(t *testing.T) {
	db := setupTestDB(t)
	seedOrg(t, db, "acme", "")
	seedProject(t, db, "backend", "acme", "")
	seedTicket(t, db, "TICKET-001", "backend", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, testTask("TASK-001-1", "TICKET-001", "Original")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	status := "done"
	completedAt := "2026-02-03T12:00:00Z"
	err := repo.Update(ctx, "TASK-001-1", &secondary.TaskUpdateRecord{
		Status:      &status,
		CompletedAt: &completedAt,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	retrieved, _ := repo.GetByID(ctx, "TASK-001-1")
	if retrieved.Status != "done" {
		t.Errorf("expected status 'done', got '%s'", retrieved.Status)
	}
	if retrieved.CompletedAt != completedAt {
		t.Errorf("expected completed_at '%s', got '%s'", completedAt, retrieved.CompletedAt)
	}
	if retrieved.Title != "Original" {
		t.Errorf("expected title unchanged, got '%s'", retrieved.Title)
	}
}

func TestTaskRepository_CountForTicket(t *testing.T) {
	db := setupTestDB(t)
	seedOrg(t, db, "acme", "")
	seedProject(t, db, "backend", "acme", "")
	seedTicket(t, db, "TICKET-001", "backend", "")
	seedTicket(t, db, "TICKET-002", "backend", "Second")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	count, err := repo.CountForTicket(ctx, "TICKET-001")
	if err != nil {
		t.Fatalf("CountForTicket failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 tasks, got %d", count)
	}

	seedTask(t, db, "TASK-001-1", "TICKET-001", "")
	seedTask(t, db, "TASK-001-2", "TICKET-001", "")
	seedTask(t, db, "TASK-002-1", "TICKET-002", "")

	count, err = repo.CountForTicket(ctx, "TICKET-001")
	if err != nil {
		t.Fatalf("CountForTicket failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 tasks for TICKET-001, got %d", count)
	}
}

func TestTaskRepository_AddDependency(t *testing.T) {
	db := setupTestDB(t)
	seedOrg(t, db, "acme", "")
	seedProject(t, db, "backend", "acme", "")
	seedTicket(t, db, "TICKET-001", "backend", "")
	seedTask(t, db, "TASK-001-1", "TICKET-001", "")
	seedTask(t, db, "TASK-001-2", "TICKET-001", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	added, err := repo.AddDependency(ctx, "TASK-001-2", "TASK-001-1")
	if err != nil {
		t.Fatalf("AddDependency failed: %v", err)
	}
	if !added {
		t.Error("expected first edge insert to report true")
	}

	// Duplicate edge is benign, not an error
	added, err = repo.AddDependency(ctx, "TASK-001-2", "TASK-001-1")
	if err != nil {
		t.Fatalf("duplicate AddDependency failed: %v", err)
	}
	if added {
		t.Error("expected duplicate edge to report false")
	}

	deps, err := repo.Dependencies(ctx, "TASK-001-2")
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}
	if len(deps) != 1 || deps[0] != "TASK-001-1" {
		t.Errorf("expected [TASK-001-1], got %v", deps)
	}
}

func TestTaskRepository_Dependencies_Empty(t *testing.T) {
	db := setupTestDB(t)
	seedOrg(t, db, "acme", "")
	seedProject(t, db, "backend", "acme", "")
	seedTicket(t, db, "TICKET-001", "backend", "")
	seedTask(t, db, "TASK-001-1", "TICKET-001", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	deps, err := repo.Dependencies(ctx, "TASK-001-1")
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}
	if len(deps) != 0 {
		t.Errorf("expected no dependencies, got %v", deps)
	}
}

func TestTaskRepository_AllDependencies(t *testing.T) {
	db := setupTestDB(t)
	seedOrg(t, db, "acme", "")
	seedProject(t, db, "backend", "acme", "")
	seedTicket(t, db, "TICKET-001", "backend", "")
	seedTask(t, db, "TASK-001-1", "TICKET-001", "")
	seedTask(t, db, "TASK-001-2", "TICKET-001", "")
	seedTask(t, db, "TASK-001-3", "TICKET-001", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	mustAdd := func(taskID, dependsOnID string) {
		t.Helper()
		if _, err := repo.AddDependency(ctx, taskID, dependsOnID); err != nil {
			t.Fatalf("AddDependency failed: %v", err)
		}
	}
	mustAdd("TASK-001-3", "TASK-001-2")
	mustAdd("TASK-001-2", "TASK-001-1")

	edges, err := repo.AllDependencies(ctx)
	if err != nil {
		t.Fatalf("AllDependencies failed: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	// Ordered by task_id for stable export output
	if edges[0].TaskID != "TASK-001-2" || edges[1].TaskID != "TASK-001-3" {
		t.Errorf("expected edges ordered by task id, got %v, %v", edges[0], edges[1])
	}
}

func TestTaskRepository_DeleteAll(t *testing.T) {
	db := setupTestDB(t)
	seedOrg(t, db, "acme", "")
	seedProject(t, db, "backend", "acme", "")
	seedTicket(t, db, "TICKET-001", "backend", "")
	seedTask(t, db, "TASK-001-1", "TICKET-001", "")
	seedTask(t, db, "TASK-001-2", "TICKET-001", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	if _, err := repo.AddDependency(ctx, "TASK-001-2", "TASK-001-1"); err != nil {
		t.Fatalf("AddDependency failed: %v", err)
	}

	if err := repo.DeleteAllDependencies(ctx); err != nil {
		t.Fatalf("DeleteAllDependencies failed: %v", err)
	}
	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}

	tasks, _ := repo.List(ctx, secondary.TaskFilters{})
	if len(tasks) != 0 {
		t.Errorf("expected 0 tasks after DeleteAll, got %d", len(tasks))
	}
	edges, _ := repo.AllDependencies(ctx)
	if len(edges) != 0 {
		t.Errorf("expected 0 edges after DeleteAllDependencies, got %d", len(edges))
	}
}
