package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/example/tpm/internal/core/lifecycle"
	"github.com/example/tpm/internal/ports/secondary"
)

const taskColumns = `id, ticket_id, title, details, status, priority, complexity,
	created_at, completed_at, acceptance_criteria, metadata`

// TaskRepository implements secondary.TaskRepository with SQLite,
// including the dependency edge list.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, ticket_id, title, details, status, priority, complexity,
			created_at, completed_at, acceptance_criteria, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.TicketID, task.Title, nullable(task.Details),
		task.Status, task.Priority, task.Complexity,
		task.CreatedAt, nullable(task.CompletedAt),
		toJSONList(task.AcceptanceCriteria), toJSONMap(task.Metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Upsert inserts or replaces a task by ID.
func (r *TaskRepository) Upsert(ctx context.Context, task *secondary.TaskRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO tasks (id, ticket_id, title, details, status, priority, complexity,
			created_at, completed_at, acceptance_criteria, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.TicketID, task.Title, nullable(task.Details),
		task.Status, task.Priority, task.Complexity,
		task.CreatedAt, nullable(task.CompletedAt),
		toJSONList(task.AcceptanceCriteria), toJSONMap(task.Metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its exact ID.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id,
	)
	record, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return record, nil
}

// List retrieves tasks matching the given filters, ordered by created_at.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE 1=1"
	args := []any{}

	if filters.TicketID != "" {
		query += " AND ticket_id = ?"
		args = append(args, filters.TicketID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}
	return tasks, rows.Err()
}

// Update applies a partial update; nil fields are left untouched.
func (r *TaskRepository) Update(ctx context.Context, id string, update *secondary.TaskUpdateRecord) error {
	sets := []string{}
	args := []any{}

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Details != nil {
		sets = append(sets, "details = ?")
		args = append(args, *update.Details)
	}
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *update.Status)
	}
	if update.CompletedAt != nil {
		sets = append(sets, "completed_at = ?")
		args = append(args, *update.CompletedAt)
	}
	if update.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *update.Priority)
	}
	if update.Complexity != nil {
		sets = append(sets, "complexity = ?")
		args = append(args, *update.Complexity)
	}
	if update.AcceptanceCriteria != nil {
		sets = append(sets, "acceptance_criteria = ?")
		args = append(args, toJSONList(*update.AcceptanceCriteria))
	}
	if update.Metadata != nil {
		sets = append(sets, "metadata = ?")
		args = append(args, toJSONMap(*update.Metadata))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// CountForTicket returns the number of tasks under a ticket.
func (r *TaskRepository) CountForTicket(ctx context.Context, ticketID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE ticket_id = ?", ticketID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// AddDependency inserts a dependency edge. A duplicate edge violates
// the primary key and is reported as false, not an error - re-imports
// hit this constantly and it is benign.
func (r *TaskRepository) AddDependency(ctx context.Context, taskID, dependsOnID string) (bool, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO task_dependencies (task_id, depends_on_id) VALUES (?, ?)",
		taskID, dependsOnID,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return false, nil
		}
		return false, fmt.Errorf("failed to add task dependency: %w", err)
	}
	return true, nil
}

// Dependencies returns the IDs of tasks that taskID depends on.
func (r *TaskRepository) Dependencies(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT depends_on_id FROM task_dependencies WHERE task_id = ?", taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get task dependencies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AllDependencies returns every dependency edge, ordered for stable
// export output.
func (r *TaskRepository) AllDependencies(ctx context.Context) ([]*secondary.DependencyRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT task_id, depends_on_id FROM task_dependencies ORDER BY task_id, depends_on_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list task dependencies: %w", err)
	}
	defer rows.Close()

	var edges []*secondary.DependencyRecord
	for rows.Next() {
		edge := &secondary.DependencyRecord{}
		if err := rows.Scan(&edge.TaskID, &edge.DependsOnID); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

// DeleteAll removes every task.
func (r *TaskRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	return nil
}

// DeleteAllDependencies removes every dependency edge.
func (r *TaskRepository) DeleteAllDependencies(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM task_dependencies"); err != nil {
		return fmt.Errorf("failed to clear task dependencies: %w", err)
	}
	return nil
}

func scanTask(row rowScanner) (*secondary.TaskRecord, error) {
	var (
		details, priority, complexity, completedAt sql.NullString
		acceptance, meta                           sql.NullString
	)

	record := &secondary.TaskRecord{}
	err := row.Scan(
		&record.ID, &record.TicketID, &record.Title, &details,
		&record.Status, &priority, &complexity,
		&record.CreatedAt, &completedAt, &acceptance, &meta,
	)
	if err != nil {
		return nil, err
	}

	record.Details = details.String
	record.CompletedAt = completedAt.String
	record.AcceptanceCriteria = fromJSONList(acceptance)
	record.Metadata = fromJSONMap(meta)

	// Legacy rows may carry NULL priority/complexity; default them the
	// way the rest of the system does.
	record.Priority = priority.String
	if record.Priority == "" {
		record.Priority = lifecycle.DefaultPriority()
	}
	record.Complexity = complexity.String
	if record.Complexity == "" {
		record.Complexity = lifecycle.DefaultComplexity()
	}

	record.Status = lifecycle.Normalize(record.Status)

	return record, nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
