package app

import (
	"context"
	"fmt"

	"github.com/example/tpm/internal/core/lifecycle"
	"github.com/example/tpm/internal/core/roadmap"
	"github.com/example/tpm/internal/ports/primary"
	"github.com/example/tpm/internal/ports/secondary"
)

// RoadmapServiceImpl implements the RoadmapService interface.
type RoadmapServiceImpl struct {
	orgRepo     secondary.OrgRepository
	projectRepo secondary.ProjectRepository
	ticketRepo  secondary.TicketRepository
	taskRepo    secondary.TaskRepository
}

// NewRoadmapService creates a new RoadmapService with injected dependencies.
func NewRoadmapService(
	orgRepo secondary.OrgRepository,
	projectRepo secondary.ProjectRepository,
	ticketRepo secondary.TicketRepository,
	taskRepo secondary.TaskRepository,
) *RoadmapServiceImpl {
	return &RoadmapServiceImpl{
		orgRepo:     orgRepo,
		projectRepo: projectRepo,
		ticketRepo:  ticketRepo,
		taskRepo:    taskRepo,
	}
}

// BuildRoadmap walks org -> project -> ticket -> task in a single
// bottom-up pass and returns the tree with roll-up counters. All counts
// are derived from current state on every call; nothing is cached or
// stored. An unknown org filter yields an empty roadmap, not an error.
func (s *RoadmapServiceImpl) BuildRoadmap(ctx context.Context, orgID string) (*primary.RoadmapView, error) {
	orgs, err := s.selectOrgs(ctx, orgID)
	if err != nil {
		return nil, err
	}

	view := &primary.RoadmapView{}
	tally := &roadmap.Tally{}

	for _, org := range orgs {
		orgView := &primary.OrgView{ID: org.ID, Name: org.Name}

		projects, err := s.projectRepo.List(ctx, org.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}

		for _, project := range projects {
			projectView, err := s.buildProject(ctx, project, tally)
			if err != nil {
				return nil, err
			}
			orgView.Projects = append(orgView.Projects, projectView)
		}

		view.Orgs = append(view.Orgs, orgView)
	}

	view.Stats = primary.RoadmapStats{
		TotalTickets:  tally.TotalTickets,
		TicketsDone:   tally.TicketsDone,
		TotalTasks:    tally.TotalTasks,
		TasksDone:     tally.TasksDone,
		CompletionPct: tally.CompletionPct(),
	}
	return view, nil
}

func (s *RoadmapServiceImpl) selectOrgs(ctx context.Context, orgID string) ([]*secondary.OrgRecord, error) {
	if orgID == "" {
		orgs, err := s.orgRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list orgs: %w", err)
		}
		return orgs, nil
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get org: %w", err)
	}
	if org == nil {
		return nil, nil
	}
	return []*secondary.OrgRecord{org}, nil
}

func (s *RoadmapServiceImpl) buildProject(ctx context.Context, project *secondary.ProjectRecord, tally *roadmap.Tally) (*primary.ProjectView, error) {
	projectView := &primary.ProjectView{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
	}

	tickets, err := s.ticketRepo.List(ctx, secondary.TicketFilters{ProjectID: project.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	for _, ticket := range tickets {
		tasks, err := s.taskRepo.List(ctx, secondary.TaskFilters{TicketID: ticket.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}

		statuses := make([]string, len(tasks))
		taskViews := make([]*primary.TaskView, len(tasks))
		for i, task := range tasks {
			statuses[i] = task.Status
			taskViews[i] = &primary.TaskView{
				ID:         task.ID,
				Title:      task.Title,
				Status:     task.Status,
				Priority:   task.Priority,
				Complexity: task.Complexity,
			}
		}

		tasksDone := tally.AddTicket(ticket.Status, statuses)

		projectView.TicketCount++
		if lifecycle.IsDone(ticket.Status) {
			projectView.TicketsDone++
		}
		projectView.Tickets = append(projectView.Tickets, &primary.TicketView{
			ID:        ticket.ID,
			Title:     ticket.Title,
			Status:    ticket.Status,
			Priority:  ticket.Priority,
			Tags:      ticket.Tags,
			TaskCount: len(tasks),
			TasksDone: tasksDone,
			Tasks:     taskViews,
		})
	}

	return projectView, nil
}

// Ensure RoadmapServiceImpl implements the interface
var _ primary.RoadmapService = (*RoadmapServiceImpl)(nil)
