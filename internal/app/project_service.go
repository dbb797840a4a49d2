package app

import (
	"context"
	"fmt"

	"github.com/example/tpm/internal/core/identity"
	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo secondary.ProjectRepository
	orgRepo     secondary.OrgRepository
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(projectRepo secondary.ProjectRepository, orgRepo secondary.OrgRepository) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
		orgRepo:     orgRepo,
	}
}

// CreateProject creates a new project with a generated ID. The org
// reference resolves case-insensitively to the stored casing; an
// unknown org ID is adopted in normalized form rather than rejected.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	orgID, err := s.resolveOrgID(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}

	record := &secondary.ProjectRecord{
		ID:          identity.NewID(),
		OrgID:       orgID,
		Name:        req.Name,
		RepoPath:    req.RepoPath,
		Description: req.Description,
		CreatedAt:   nowStamp(),
	}
	if err := s.projectRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return projectFromRecord(record), nil
}

// CreateProjectWithID idempotently upserts a project under a
// caller-chosen ID.
func (s *ProjectServiceImpl) CreateProjectWithID(ctx context.Context, req primary.CreateProjectWithIDRequest) (*primary.Project, error) {
	stored, err := s.projectRepo.ResolveID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project id: %w", err)
	}
	orgID, err := s.resolveOrgID(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}

	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = nowStamp()
	}

	record := &secondary.ProjectRecord{
		ID:          identity.Canonical(req.ID, stored),
		OrgID:       orgID,
		Name:        req.Name,
		RepoPath:    req.RepoPath,
		Description: req.Description,
		CreatedAt:   createdAt,
	}
	if err := s.projectRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert project: %w", err)
	}
	return projectFromRecord(record), nil
}

// GetProject retrieves a project case-insensitively.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	return projectFromRecord(record), nil
}

// ListProjects lists projects ordered by name, optionally filtered to
// an org.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, orgID string) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = projectFromRecord(r)
	}
	return projects, nil
}

// resolveOrgID maps an org reference to its canonical form: the stored
// casing when a case-insensitive match exists, the normalized input
// otherwise.
func (s *ProjectServiceImpl) resolveOrgID(ctx context.Context, orgID string) (string, error) {
	stored, err := s.orgRepo.ResolveID(ctx, orgID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve org id: %w", err)
	}
	return identity.Canonical(orgID, stored), nil
}

func projectFromRecord(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:          r.ID,
		OrgID:       r.OrgID,
		Name:        r.Name,
		RepoPath:    r.RepoPath,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
