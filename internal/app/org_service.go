package app

import (
	"context"
	"fmt"

	"github.com/example/tpm/internal/core/identity"
	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/ports/secondary"
)

// OrgServiceImpl implements the OrgService interface.
type OrgServiceImpl struct {
	orgRepo secondary.OrgRepository
}

// NewOrgService creates a new OrgService with injected dependencies.
func NewOrgService(orgRepo secondary.OrgRepository) *OrgServiceImpl {
	return &OrgServiceImpl{orgRepo: orgRepo}
}

// CreateOrg creates a new org with a generated ID.
func (s *OrgServiceImpl) CreateOrg(ctx context.Context, req primary.CreateOrgRequest) (*primary.Org, error) {
	record := &secondary.OrgRecord{
		ID:        identity.NewID(),
		Name:      req.Name,
		CreatedAt: nowStamp(),
	}
	if err := s.orgRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create org: %w", err)
	}
	return orgFromRecord(record), nil
}

// CreateOrgWithID idempotently upserts an org under a caller-chosen ID.
// A case-insensitive match against an existing org resolves to the
// stored casing so replays never fork the record.
func (s *OrgServiceImpl) CreateOrgWithID(ctx context.Context, req primary.CreateOrgWithIDRequest) (*primary.Org, error) {
	stored, err := s.orgRepo.ResolveID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve org id: %w", err)
	}

	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = nowStamp()
	}

	record := &secondary.OrgRecord{
		ID:        identity.Canonical(req.ID, stored),
		Name:      req.Name,
		CreatedAt: createdAt,
	}
	if err := s.orgRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert org: %w", err)
	}
	return orgFromRecord(record), nil
}

// GetOrg retrieves an org case-insensitively.
func (s *OrgServiceImpl) GetOrg(ctx context.Context, orgID string) (*primary.Org, error) {
	record, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get org: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	return orgFromRecord(record), nil
}

// ListOrgs lists all orgs ordered by name.
func (s *OrgServiceImpl) ListOrgs(ctx context.Context) ([]*primary.Org, error) {
	records, err := s.orgRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orgs: %w", err)
	}

	orgs := make([]*primary.Org, len(records))
	for i, r := range records {
		orgs[i] = orgFromRecord(r)
	}
	return orgs, nil
}

func orgFromRecord(r *secondary.OrgRecord) *primary.Org {
	return &primary.Org{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure OrgServiceImpl implements the interface
var _ primary.OrgService = (*OrgServiceImpl)(nil)
