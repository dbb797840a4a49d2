package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tpm/internal/core/identity"
	"github.com/example/tpm/internal/core/lifecycle"
	"github.com/example/tpm/internal/core/ticketid"
	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/ports/secondary"
)

// TicketServiceImpl implements the TicketService interface.
type TicketServiceImpl struct {
	ticketRepo  secondary.TicketRepository
	projectRepo secondary.ProjectRepository
}

// NewTicketService creates a new TicketService with injected dependencies.
func NewTicketService(ticketRepo secondary.TicketRepository, projectRepo secondary.ProjectRepository) *TicketServiceImpl {
	return &TicketServiceImpl{
		ticketRepo:  ticketRepo,
		projectRepo: projectRepo,
	}
}

// CreateTicket creates a new ticket with a derived sequential ID. The
// prefix comes from the request, or from the parent project's canonical
// ID, or falls back to TICKET. The number is max(existing)+1 within the
// prefix, so deletions and out-of-order imports never cause reuse.
func (s *TicketServiceImpl) CreateTicket(ctx context.Context, req primary.CreateTicketRequest) (*primary.Ticket, error) {
	stored, err := s.projectRepo.ResolveID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project id: %w", err)
	}
	projectID := identity.Canonical(req.ProjectID, stored)

	prefix := ticketid.SanitizePrefix(req.Prefix)
	if prefix == "" {
		prefix = ticketid.SanitizePrefix(projectID)
	}
	if prefix == "" {
		prefix = ticketid.DefaultPrefix
	}

	existing, err := s.ticketRepo.ListIDsByPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan ticket ids: %w", err)
	}
	id := ticketid.Format(prefix, ticketid.NextNumber(existing))

	status := req.Status
	if status == "" {
		status = lifecycle.InitialTicketStatus()
	}
	priority := req.Priority
	if priority == "" {
		priority = lifecycle.DefaultPriority()
	}

	record := &secondary.TicketRecord{
		ID:                 id,
		ProjectID:          projectID,
		Title:              req.Title,
		Description:        req.Description,
		Status:             lifecycle.Normalize(status),
		Priority:           priority,
		CreatedAt:          nowStamp(),
		Assignees:          req.Assignees,
		Tags:               req.Tags,
		RelatedRepos:       req.RelatedRepos,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Blockers:           req.Blockers,
		Metadata:           req.Metadata,
	}
	if err := s.ticketRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return ticketFromRecord(record), nil
}

// CreateTicketWithID idempotently upserts a ticket under a
// caller-chosen ID (migration replay).
func (s *TicketServiceImpl) CreateTicketWithID(ctx context.Context, req primary.CreateTicketWithIDRequest) (*primary.Ticket, error) {
	stored, err := s.projectRepo.ResolveID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project id: %w", err)
	}

	status := req.Status
	if status == "" {
		status = lifecycle.InitialTicketStatus()
	}
	priority := req.Priority
	if priority == "" {
		priority = lifecycle.DefaultPriority()
	}
	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = nowStamp()
	}

	record := &secondary.TicketRecord{
		ID:                 req.ID,
		ProjectID:          identity.Canonical(req.ProjectID, stored),
		Title:              req.Title,
		Description:        req.Description,
		Status:             lifecycle.Normalize(status),
		Priority:           priority,
		CreatedAt:          createdAt,
		StartedAt:          req.StartedAt,
		CompletedAt:        req.CompletedAt,
		Assignees:          req.Assignees,
		Tags:               req.Tags,
		RelatedRepos:       req.RelatedRepos,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Blockers:           req.Blockers,
		Metadata:           req.Metadata,
	}
	if err := s.ticketRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert ticket: %w", err)
	}
	return ticketFromRecord(record), nil
}

// GetTicket retrieves a ticket by ID.
func (s *TicketServiceImpl) GetTicket(ctx context.Context, ticketID string) (*primary.Ticket, error) {
	record, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	return ticketFromRecord(record), nil
}

// ListTickets lists tickets matching the filters. The status filter
// accepts the legacy completed alias.
func (s *TicketServiceImpl) ListTickets(ctx context.Context, filters primary.TicketFilters) ([]*primary.Ticket, error) {
	records, err := s.ticketRepo.List(ctx, secondary.TicketFilters{
		ProjectID: filters.ProjectID,
		Status:    lifecycle.Normalize(filters.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*primary.Ticket, len(records))
	for i, r := range records {
		tickets[i] = ticketFromRecord(r)
	}
	return tickets, nil
}

// UpdateTicket applies a partial update. A status change into
// in-progress stamps started_at; into done, completed_at. Re-entering
// a state re-stamps its timestamp.
func (s *TicketServiceImpl) UpdateTicket(ctx context.Context, req primary.UpdateTicketRequest) (*primary.Ticket, error) {
	existing, err := s.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	update := &secondary.TicketUpdateRecord{
		Title:              req.Title,
		Description:        req.Description,
		Priority:           req.Priority,
		Assignees:          req.Assignees,
		Tags:               req.Tags,
		RelatedRepos:       req.RelatedRepos,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Blockers:           req.Blockers,
		Metadata:           req.Metadata,
	}

	if req.Status != nil {
		transition := lifecycle.ApplyTicketTransition(*req.Status, time.Now().UTC())
		update.Status = &transition.Status
		if transition.StartedAt != nil {
			stamp := transition.StartedAt.Format(time.RFC3339)
			update.StartedAt = &stamp
		}
		if transition.CompletedAt != nil {
			stamp := transition.CompletedAt.Format(time.RFC3339)
			update.CompletedAt = &stamp
		}
	}

	if err := s.ticketRepo.Update(ctx, req.TicketID, update); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	updated, err := s.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated ticket: %w", err)
	}
	return ticketFromRecord(updated), nil
}

// SearchTickets runs a ranked full-text query over title and
// description.
func (s *TicketServiceImpl) SearchTickets(ctx context.Context, req primary.SearchTicketsRequest) ([]*primary.SearchResult, error) {
	hits, err := s.ticketRepo.Search(ctx, secondary.SearchQuery{
		Text:      req.Query,
		ProjectID: req.ProjectID,
		Status:    req.Status,
		Priority:  req.Priority,
		Tags:      req.Tags,
		Limit:     req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search tickets: %w", err)
	}

	results := make([]*primary.SearchResult, len(hits))
	for i, h := range hits {
		results[i] = &primary.SearchResult{
			TicketID:  h.TicketID,
			Title:     h.Title,
			ProjectID: h.ProjectID,
			Status:    h.Status,
			Priority:  h.Priority,
			Tags:      h.Tags,
			Snippet:   h.Snippet,
		}
	}
	return results, nil
}

func ticketFromRecord(r *secondary.TicketRecord) *primary.Ticket {
	return &primary.Ticket{
		ID:                 r.ID,
		ProjectID:          r.ProjectID,
		Title:              r.Title,
		Description:        r.Description,
		Status:             r.Status,
		Priority:           r.Priority,
		CreatedAt:          r.CreatedAt,
		StartedAt:          r.StartedAt,
		CompletedAt:        r.CompletedAt,
		Assignees:          r.Assignees,
		Tags:               r.Tags,
		RelatedRepos:       r.RelatedRepos,
		AcceptanceCriteria: r.AcceptanceCriteria,
		Blockers:           r.Blockers,
		Metadata:           r.Metadata,
	}
}

// Ensure TicketServiceImpl implements the interface
var _ primary.TicketService = (*TicketServiceImpl)(nil)
