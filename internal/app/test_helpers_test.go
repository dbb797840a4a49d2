package app

import (
	"context"
	"sort"
	"strings"

	"github.com/example/tpm/internal/core/identity"
	"github.com/example/tpm/internal/core/lifecycle"
	"github.com/example/tpm/internal/ports/secondary"
)

// Ensure the mocks implement the interfaces
var (
	_ secondary.OrgRepository     = (*mockOrgRepo)(nil)
	_ secondary.ProjectRepository = (*mockProjectRepo)(nil)
	_ secondary.TicketRepository  = (*mockTicketRepo)(nil)
	_ secondary.TaskRepository    = (*mockTaskRepo)(nil)
	_ secondary.NoteRepository    = (*mockNoteRepo)(nil)
)

// mockOrgRepo implements secondary.OrgRepository in memory.
type mockOrgRepo struct {
	orgs []*secondary.OrgRecord
}

func newMockOrgRepo() *mockOrgRepo {
	return &mockOrgRepo{}
}

func (m *mockOrgRepo) Create(ctx context.Context, org *secondary.OrgRecord) error {
	m.orgs = append(m.orgs, org)
	return nil
}

func (m *mockOrgRepo) Upsert(ctx context.Context, org *secondary.OrgRecord) error {
	for i, existing := range m.orgs {
		if existing.ID == org.ID {
			m.orgs[i] = org
			return nil
		}
	}
	m.orgs = append(m.orgs, org)
	return nil
}

func (m *mockOrgRepo) GetByID(ctx context.Context, id string) (*secondary.OrgRecord, error) {
	for _, org := range m.orgs {
		if identity.Normalize(org.ID) == identity.Normalize(id) {
			return org, nil
		}
	}
	return nil, nil
}

func (m *mockOrgRepo) List(ctx context.Context) ([]*secondary.OrgRecord, error) {
	out := append([]*secondary.OrgRecord(nil), m.orgs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockOrgRepo) ResolveID(ctx context.Context, id string) (string, error) {
	for _, org := range m.orgs {
		if identity.Normalize(org.ID) == identity.Normalize(id) {
			return org.ID, nil
		}
	}
	return "", nil
}

func (m *mockOrgRepo) DeleteAll(ctx context.Context) error {
	m.orgs = nil
	return nil
}

// mockProjectRepo implements secondary.ProjectRepository in memory.
type mockProjectRepo struct {
	projects []*secondary.ProjectRecord
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{}
}

func (m *mockProjectRepo) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	m.projects = append(m.projects, project)
	return nil
}

func (m *mockProjectRepo) Upsert(ctx context.Context, project *secondary.ProjectRecord) error {
	for i, existing := range m.projects {
		if existing.ID == project.ID {
			m.projects[i] = project
			return nil
		}
	}
	m.projects = append(m.projects, project)
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	for _, project := range m.projects {
		if identity.Normalize(project.ID) == identity.Normalize(id) {
			return project, nil
		}
	}
	return nil, nil
}

func (m *mockProjectRepo) List(ctx context.Context, orgID string) ([]*secondary.ProjectRecord, error) {
	var out []*secondary.ProjectRecord
	for _, project := range m.projects {
		if orgID == "" || identity.Normalize(project.OrgID) == identity.Normalize(orgID) {
			out = append(out, project)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockProjectRepo) ResolveID(ctx context.Context, id string) (string, error) {
	for _, project := range m.projects {
		if identity.Normalize(project.ID) == identity.Normalize(id) {
			return project.ID, nil
		}
	}
	return "", nil
}

func (m *mockProjectRepo) DeleteAll(ctx context.Context) error {
	m.projects = nil
	return nil
}

// mockTicketRepo implements secondary.TicketRepository in memory.
// Search returns the canned searchHits; ranking belongs to the real
// adapter.
type mockTicketRepo struct {
	tickets    []*secondary.TicketRecord
	searchHits []*secondary.SearchHit
	lastSearch secondary.SearchQuery
}

func newMockTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{}
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *secondary.TicketRecord) error {
	m.tickets = append(m.tickets, ticket)
	return nil
}

func (m *mockTicketRepo) Upsert(ctx context.Context, ticket *secondary.TicketRecord) error {
	for i, existing := range m.tickets {
		if existing.ID == ticket.ID {
			m.tickets[i] = ticket
			return nil
		}
	}
	m.tickets = append(m.tickets, ticket)
	return nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*secondary.TicketRecord, error) {
	for _, ticket := range m.tickets {
		if ticket.ID == id {
			return ticket, nil
		}
	}
	return nil, nil
}

func (m *mockTicketRepo) List(ctx context.Context, filters secondary.TicketFilters) ([]*secondary.TicketRecord, error) {
	var out []*secondary.TicketRecord
	for _, ticket := range m.tickets {
		if filters.ProjectID != "" && identity.Normalize(ticket.ProjectID) != identity.Normalize(filters.ProjectID) {
			continue
		}
		if filters.Status != "" && ticket.Status != filters.Status {
			continue
		}
		out = append(out, ticket)
	}
	return out, nil
}

func (m *mockTicketRepo) Update(ctx context.Context, id string, update *secondary.TicketUpdateRecord) error {
	for _, ticket := range m.tickets {
		if ticket.ID != id {
			continue
		}
		if update.Title != nil {
			ticket.Title = *update.Title
		}
		if update.Description != nil {
			ticket.Description = *update.Description
		}
		if update.Status != nil {
			ticket.Status = lifecycle.Normalize(*update.Status)
		}
		if update.StartedAt != nil {
			ticket.StartedAt = *update.StartedAt
		}
		if update.CompletedAt != nil {
			ticket.CompletedAt = *update.CompletedAt
		}
		if update.Priority != nil {
			ticket.Priority = *update.Priority
		}
		if update.Assignees != nil {
			ticket.Assignees = *update.Assignees
		}
		if update.Tags != nil {
			ticket.Tags = *update.Tags
		}
		if update.RelatedRepos != nil {
			ticket.RelatedRepos = *update.RelatedRepos
		}
		if update.AcceptanceCriteria != nil {
			ticket.AcceptanceCriteria = *update.AcceptanceCriteria
		}
		if update.Blockers != nil {
			ticket.Blockers = *update.Blockers
		}
		if update.Metadata != nil {
			ticket.Metadata = *update.Metadata
		}
		return nil
	}
	return nil
}

func (m *mockTicketRepo) ListIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var ids []string
	for _, ticket := range m.tickets {
		if strings.HasPrefix(ticket.ID, prefix+"-") {
			ids = append(ids, ticket.ID)
		}
	}
	return ids, nil
}

func (m *mockTicketRepo) Search(ctx context.Context, query secondary.SearchQuery) ([]*secondary.SearchHit, error) {
	m.lastSearch = query
	return m.searchHits, nil
}

func (m *mockTicketRepo) DeleteAll(ctx context.Context) error {
	m.tickets = nil
	return nil
}

// mockTaskRepo implements secondary.TaskRepository in memory.
type mockTaskRepo struct {
	tasks []*secondary.TaskRecord
	deps  []*secondary.DependencyRecord
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{}
}

func (m *mockTaskRepo) Create(ctx context.Context, task *secondary.TaskRecord) error {
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *mockTaskRepo) Upsert(ctx context.Context, task *secondary.TaskRecord) error {
	for i, existing := range m.tasks {
		if existing.ID == task.ID {
			m.tasks[i] = task
			return nil
		}
	}
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	for _, task := range m.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, nil
}

func (m *mockTaskRepo) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	var out []*secondary.TaskRecord
	for _, task := range m.tasks {
		if filters.TicketID != "" && task.TicketID != filters.TicketID {
			continue
		}
		if filters.Status != "" && task.Status != filters.Status {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, id string, update *secondary.TaskUpdateRecord) error {
	for _, task := range m.tasks {
		if task.ID != id {
			continue
		}
		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.Details != nil {
			task.Details = *update.Details
		}
		if update.Status != nil {
			task.Status = lifecycle.Normalize(*update.Status)
		}
		if update.CompletedAt != nil {
			task.CompletedAt = *update.CompletedAt
		}
		if update.Priority != nil {
			task.Priority = *update.Priority
		}
		if update.Complexity != nil {
			task.Complexity = *update.Complexity
		}
		if update.AcceptanceCriteria != nil {
			task.AcceptanceCriteria = *update.AcceptanceCriteria
		}
		if update.Metadata != nil {
			task.Metadata = *update.Metadata
		}
		return nil
	}
	return nil
}

func (m *mockTaskRepo) CountForTicket(ctx context.Context, ticketID string) (int, error) {
	count := 0
	for _, task := range m.tasks {
		if task.TicketID == ticketID {
			count++
		}
	}
	return count, nil
}

func (m *mockTaskRepo) AddDependency(ctx context.Context, taskID, dependsOnID string) (bool, error) {
	for _, edge := range m.deps {
		if edge.TaskID == taskID && edge.DependsOnID == dependsOnID {
			return false, nil
		}
	}
	m.deps = append(m.deps, &secondary.DependencyRecord{TaskID: taskID, DependsOnID: dependsOnID})
	return true, nil
}

func (m *mockTaskRepo) Dependencies(ctx context.Context, taskID string) ([]string, error) {
	var ids []string
	for _, edge := range m.deps {
		if edge.TaskID == taskID {
			ids = append(ids, edge.DependsOnID)
		}
	}
	return ids, nil
}

func (m *mockTaskRepo) AllDependencies(ctx context.Context) ([]*secondary.DependencyRecord, error) {
	return append([]*secondary.DependencyRecord(nil), m.deps...), nil
}

func (m *mockTaskRepo) DeleteAll(ctx context.Context) error {
	m.tasks = nil
	return nil
}

func (m *mockTaskRepo) DeleteAllDependencies(ctx context.Context) error {
	m.deps = nil
	return nil
}

// mockNoteRepo implements secondary.NoteRepository in memory.
type mockNoteRepo struct {
	notes []*secondary.NoteRecord
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{}
}

func (m *mockNoteRepo) Create(ctx context.Context, note *secondary.NoteRecord) error {
	m.notes = append(m.notes, note)
	return nil
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id string) (*secondary.NoteRecord, error) {
	for _, note := range m.notes {
		if note.ID == id {
			return note, nil
		}
	}
	return nil, nil
}

func (m *mockNoteRepo) ListForEntity(ctx context.Context, entityType, entityID string) ([]*secondary.NoteRecord, error) {
	var out []*secondary.NoteRecord
	for _, note := range m.notes {
		if note.EntityType == entityType && note.EntityID == entityID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (m *mockNoteRepo) List(ctx context.Context) ([]*secondary.NoteRecord, error) {
	return append([]*secondary.NoteRecord(nil), m.notes...), nil
}

func (m *mockNoteRepo) DeleteAll(ctx context.Context) error {
	m.notes = nil
	return nil
}
