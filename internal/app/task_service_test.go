package app

import (
	"context"
	"strings"
	"testing"

	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/ports/secondary"
)

func newTaskTestService() (*TaskServiceImpl, *mockTaskRepo, *mockTicketRepo) {
	taskRepo := newMockTaskRepo()
	ticketRepo := newMockTicketRepo()
	return NewTaskService(taskRepo, ticketRepo), taskRepo, ticketRepo
}

func TestTaskService_CreateTask(t *testing.T) {
	svc, _, ticketRepo := newTaskTestService()
	ticketRepo.tickets = append(ticketRepo.tickets, &secondary.TicketRecord{
		ID: "AUTH-001", ProjectID: "backend", Status: "backlog",
	})
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, primary.CreateTaskRequest{
		TicketID: "AUTH-001", Title: "Write handler",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID != "TASK-AUTH-001-1" {
		t.Errorf("expected ID 'TASK-AUTH-001-1', got '%s'", task.ID)
	}
	if task.Status != "pending" {
		t.Errorf("expected default status 'pending', got '%s'", task.Status)
	}
	if task.Priority != "medium" || task.Complexity != "medium" {
		t.Errorf("expected default priority/complexity, got %s/%s", task.Priority, task.Complexity)
	}
}

func TestTaskService_CreateTask_SequentialWithinTicket(t *testing.T) {
	svc, _, ticketRepo := newTaskTestService()
	ticketRepo.tickets = append(ticketRepo.tickets,
		&secondary.TicketRecord{ID: "AUTH-001", ProjectID: "backend", Status: "backlog"},
		&secondary.TicketRecord{ID: "PAY-001", ProjectID: "backend", Status: "backlog"},
	)
	ctx := context.Background()

	first, err := svc.CreateTask(ctx, primary.CreateTaskRequest{TicketID: "AUTH-001", Title: "One"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	second, err := svc.CreateTask(ctx, primary.CreateTaskRequest{TicketID: "AUTH-001", Title: "Two"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	other, err := svc.CreateTask(ctx, primary.CreateTaskRequest{TicketID: "PAY-001", Title: "Other"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if first.ID != "TASK-AUTH-001-1" || second.ID != "TASK-AUTH-001-2" {
		t.Errorf("expected per-ticket numbering, got %s, %s", first.ID, second.ID)
	}
	// Numbering is scoped: the other ticket starts over at 1
	if other.ID != "TASK-PAY-001-1" {
		t.Errorf("expected scoped numbering 'TASK-PAY-001-1', got '%s'", other.ID)
	}
}

func TestTaskService_CreateTask_StripsLegacyTicketPrefix(t *testing.T) {
	svc, _, ticketRepo := newTaskTestService()
	ticketRepo.tickets = append(ticketRepo.tickets, &secondary.TicketRecord{
		ID: "FEAT-042", ProjectID: "backend", Status: "backlog",
	})
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, primary.CreateTaskRequest{
		TicketID: "FEAT-042", Title: "Migrated",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID != "TASK-042-1" {
		t.Errorf("expected legacy prefix stripped, got '%s'", task.ID)
	}
}

func TestTaskService_CreateTask_MissingParent(t *testing.T) {
	svc, _, _ := newTaskTestService()
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, primary.CreateTaskRequest{
		TicketID: "GHOST-001", Title: "Orphan",
	})
	if err == nil {
		t.Fatal("expected error for missing parent ticket")
	}
	if !strings.Contains(err.Error(), "GHOST-001") {
		t.Errorf("expected error naming the ticket, got %v", err)
	}
}

func TestTaskService_CreateTaskWithID_Replay(t *testing.T) {
	svc, taskRepo, _ := newTaskTestService()
	ctx := context.Background()

	req := primary.CreateTaskWithIDRequest{
		ID: "TASK-042-1", TicketID: "FEAT-042", Title: "Imported",
		Status: "completed", CreatedAt: "2024-06-15T08:30:00Z",
	}
	task, err := svc.CreateTaskWithID(ctx, req)
	if err != nil {
		t.Fatalf("CreateTaskWithID failed: %v", err)
	}
	if task.Status != "done" {
		t.Errorf("expected alias normalized, got '%s'", task.Status)
	}

	if _, err := svc.CreateTaskWithID(ctx, req); err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if len(taskRepo.tasks) != 1 {
		t.Errorf("expected 1 task after replay, got %d", len(taskRepo.tasks))
	}
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	svc, _, _ := newTaskTestService()
	ctx := context.Background()

	task, err := svc.GetTask(ctx, "TASK-999-1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if task != nil {
		t.Errorf("expected nil for missing task, got %+v", task)
	}
}

func TestTaskService_UpdateTask_DoneStampsCompletedAt(t *testing.T) {
	svc, taskRepo, _ := newTaskTestService()
	taskRepo.tasks = append(taskRepo.tasks, &secondary.TaskRecord{
		ID: "TASK-001-1", TicketID: "AUTH-001", Title: "Work", Status: "in-progress",
		Priority: "medium", Complexity: "medium", CreatedAt: "2026-01-01T00:00:00Z",
	})
	ctx := context.Background()

	status := "done"
	task, err := svc.UpdateTask(ctx, primary.UpdateTaskRequest{
		TaskID: "TASK-001-1", Status: &status,
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if task.Status != "done" {
		t.Errorf("expected status 'done', got '%s'", task.Status)
	}
	if task.CompletedAt == "" {
		t.Error("expected completed_at to be stamped")
	}
}

func TestTaskService_UpdateTask_NotFound(t *testing.T) {
	svc, _, _ := newTaskTestService()
	ctx := context.Background()

	title := "Renamed"
	task, err := svc.UpdateTask(ctx, primary.UpdateTaskRequest{
		TaskID: "TASK-999-1", Title: &title,
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if task != nil {
		t.Errorf("expected nil for missing task, got %+v", task)
	}
}

func TestTaskService_AddDependency_DuplicateIsBenign(t *testing.T) {
	svc, _, _ := newTaskTestService()
	ctx := context.Background()

	added, err := svc.AddDependency(ctx, "TASK-001-2", "TASK-001-1")
	if err != nil {
		t.Fatalf("AddDependency failed: %v", err)
	}
	if !added {
		t.Error("expected first edge to report true")
	}

	added, err = svc.AddDependency(ctx, "TASK-001-2", "TASK-001-1")
	if err != nil {
		t.Fatalf("duplicate AddDependency failed: %v", err)
	}
	if added {
		t.Error("expected duplicate edge to report false")
	}

	deps, err := svc.GetDependencies(ctx, "TASK-001-2")
	if err != nil {
		t.Fatalf("GetDependencies failed: %v", err)
	}
	if len(deps) != 1 || deps[0] != "TASK-001-1" {
		t.Errorf("expected single dependency, got %v", deps)
	}
}
