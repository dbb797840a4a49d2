package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/tpm/internal/core/identity"
	"github.com/example/tpm/internal/core/lifecycle"
	"github.com/example/tpm/internal/ports/secondary"
)

// ticketColumns is the scan order shared by every ticket query.
const ticketColumns = `id, project_id, title, description, status, priority, created_at,
	started_at, completed_at, assignees, tags, related_repos, acceptance_criteria, blockers, metadata`

// TicketRepository implements secondary.TicketRepository with SQLite,
// including the FTS5-backed search.
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new SQLite ticket repository.
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create persists a new ticket. The FTS index row is maintained by the
// schema triggers.
func (r *TicketRepository) Create(ctx context.Context, ticket *secondary.TicketRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (id, project_id, title, description, status, priority, created_at,
			started_at, completed_at, assignees, tags, related_repos, acceptance_criteria, blockers, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ticket.ID, ticket.ProjectID, ticket.Title, nullable(ticket.Description),
		ticket.Status, ticket.Priority, ticket.CreatedAt,
		nullable(ticket.StartedAt), nullable(ticket.CompletedAt),
		toJSONList(ticket.Assignees), toJSONList(ticket.Tags), toJSONList(ticket.RelatedRepos),
		toJSONList(ticket.AcceptanceCriteria), toJSONList(ticket.Blockers), toJSONMap(ticket.Metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// Upsert inserts or updates a ticket by ID. Uses ON CONFLICT DO UPDATE
// rather than INSERT OR REPLACE so the FTS update trigger fires instead
// of leaving a stale index row behind.
func (r *TicketRepository) Upsert(ctx context.Context, ticket *secondary.TicketRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (id, project_id, title, description, status, priority, created_at,
			started_at, completed_at, assignees, tags, related_repos, acceptance_criteria, blockers, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			priority = excluded.priority,
			created_at = excluded.created_at,
			started_at = excluded.started_at,
			completed_at = excluded.completed_at,
			assignees = excluded.assignees,
			tags = excluded.tags,
			related_repos = excluded.related_repos,
			acceptance_criteria = excluded.acceptance_criteria,
			blockers = excluded.blockers,
			metadata = excluded.metadata`,
		ticket.ID, ticket.ProjectID, ticket.Title, nullable(ticket.Description),
		ticket.Status, ticket.Priority, ticket.CreatedAt,
		nullable(ticket.StartedAt), nullable(ticket.CompletedAt),
		toJSONList(ticket.Assignees), toJSONList(ticket.Tags), toJSONList(ticket.RelatedRepos),
		toJSONList(ticket.AcceptanceCriteria), toJSONList(ticket.Blockers), toJSONMap(ticket.Metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ticket: %w", err)
	}
	return nil
}

// GetByID retrieves a ticket by its exact ID.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*secondary.TicketRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id = ?", id,
	)
	record, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return record, nil
}

// List retrieves tickets matching the given filters, ordered by
// (priority, created_at).
func (r *TicketRepository) List(ctx context.Context, filters secondary.TicketFilters) ([]*secondary.TicketRecord, error) {
	query := "SELECT " + ticketColumns + " FROM tickets WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND LOWER(project_id) = ?"
		args = append(args, identity.Normalize(filters.ProjectID))
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	query += " ORDER BY priority, created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*secondary.TicketRecord
	for rows.Next() {
		record, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, record)
	}
	return tickets, rows.Err()
}

// Update applies a partial update; nil fields are left untouched.
func (r *TicketRepository) Update(ctx context.Context, id string, update *secondary.TicketUpdateRecord) error {
	sets := []string{}
	args := []any{}

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *update.Status)
	}
	if update.StartedAt != nil {
		sets = append(sets, "started_at = ?")
		args = append(args, *update.StartedAt)
	}
	if update.CompletedAt != nil {
		sets = append(sets, "completed_at = ?")
		args = append(args, *update.CompletedAt)
	}
	if update.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *update.Priority)
	}
	if update.Assignees != nil {
		sets = append(sets, "assignees = ?")
		args = append(args, toJSONList(*update.Assignees))
	}
	if update.Tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, toJSONList(*update.Tags))
	}
	if update.RelatedRepos != nil {
		sets = append(sets, "related_repos = ?")
		args = append(args, toJSONList(*update.RelatedRepos))
	}
	if update.AcceptanceCriteria != nil {
		sets = append(sets, "acceptance_criteria = ?")
		args = append(args, toJSONList(*update.AcceptanceCriteria))
	}
	if update.Blockers != nil {
		sets = append(sets, "blockers = ?")
		args = append(args, toJSONList(*update.Blockers))
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
		"UPDATE tickets SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}

// ListIDsByPrefix returns all ticket IDs matching "{prefix}-%". Numeric
// suffix parsing happens in the caller so entries with non-numeric
// suffixes are skipped, not failed.
func (r *TicketRepository) ListIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM tickets WHERE id LIKE ?", prefix+"-%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan ticket ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ticket id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Search runs a ranked FTS5 query over ticket title+description with
// conjunctive filters. Each whitespace token becomes a prefix term;
// FTS5 ANDs them implicitly. Malformed query syntax (unbalanced quotes
// and the like) degrades to an empty result set.
func (r *TicketRepository) Search(ctx context.Context, query secondary.SearchQuery) ([]*secondary.SearchHit, error) {
	terms := strings.Fields(query.Text)
	if len(terms) == 0 {
		return nil, nil
	}
	for i, term := range terms {
		terms[i] = term + "*"
	}
	ftsQuery := strings.Join(terms, " ")

	sqlStr := `
		SELECT
			t.id,
			t.title,
			t.project_id,
			t.status,
			t.priority,
			t.tags,
			snippet(tickets_fts, 1, '<b>', '</b>', '...', 32) AS snippet
		FROM tickets_fts
		JOIN tickets t ON tickets_fts.ticket_id = t.id
		WHERE tickets_fts MATCH ?`
	args := []any{ftsQuery}

	if query.ProjectID != "" {
		sqlStr += " AND LOWER(t.project_id) = ?"
		args = append(args, identity.Normalize(query.ProjectID))
	}
	if query.Status != "" {
		sqlStr += " AND t.status = ?"
		args = append(args, lifecycle.Normalize(query.Status))
	}
	if query.Priority != "" {
		sqlStr += " AND t.priority = ?"
		args = append(args, query.Priority)
	}
	// Superset tag filter: the ticket must carry every supplied tag.
	for _, tag := range query.Tags {
		sqlStr += " AND EXISTS (SELECT 1 FROM json_each(t.tags) WHERE value = ?)"
		args = append(args, tag)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	sqlStr += " ORDER BY rank LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		// FTS5 reports syntax errors at query time; swallow them.
		return nil, nil
	}
	defer rows.Close()

	var hits []*secondary.SearchHit
	for rows.Next() {
		var tags sql.NullString
		hit := &secondary.SearchHit{}
		err := rows.Scan(&hit.TicketID, &hit.Title, &hit.ProjectID, &hit.Status, &hit.Priority, &tags, &hit.Snippet)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		hit.Status = lifecycle.Normalize(hit.Status)
		hit.Tags = fromJSONList(tags)
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

// DeleteAll removes every ticket.
func (r *TicketRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tickets"); err != nil {
		return fmt.Errorf("failed to clear tickets: %w", err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*secondary.TicketRecord, error) {
	var (
		description, startedAt, completedAt                      sql.NullString
		assignees, tags, relatedRepos, acceptance, blockers, meta sql.NullString
	)

	record := &secondary.TicketRecord{}
	err := row.Scan(
		&record.ID, &record.ProjectID, &record.Title, &description,
		&record.Status, &record.Priority, &record.CreatedAt,
		&startedAt, &completedAt,
		&assignees, &tags, &relatedRepos, &acceptance, &blockers, &meta,
	)
	if err != nil {
		return nil, err
	}

	record.Description = description.String
	record.StartedAt = startedAt.String
	record.CompletedAt = completedAt.String
	record.Assignees = fromJSONList(assignees)
	record.Tags = fromJSONList(tags)
	record.RelatedRepos = fromJSONList(relatedRepos)
	record.AcceptanceCriteria = fromJSONList(acceptance)
	record.Blockers = fromJSONList(blockers)
	record.Metadata = fromJSONMap(meta)

	// Collapse the legacy alias on read so it never leaks to callers.
	record.Status = lifecycle.Normalize(record.Status)

	return record, nil
}

// Ensure TicketRepository implements the interface
var _ secondary.TicketRepository = (*TicketRepository)(nil)
