package primary

import "context"

// RoadmapService defines the primary port for the aggregated tree view.
type RoadmapService interface {
	// BuildRoadmap walks org -> project -> ticket -> task and returns a
	// read-only snapshot with roll-up statistics, optionally filtered
	// to one org (case-insensitive). Counts are recomputed from current
	// state on every call.
	BuildRoadmap(ctx context.Context, orgID string) (*RoadmapView, error)
}

// RoadmapView is the aggregated rollup of the full tree.
type RoadmapView struct {
	Orgs  []*OrgView
	Stats RoadmapStats
}

// RoadmapStats carries the global derived counters.
type RoadmapStats struct {
	TotalTickets  int
	TicketsDone   int
	TotalTasks    int
	TasksDone     int
	CompletionPct float64
}

// OrgView is an org node in the roadmap.
type OrgView struct {
	ID       string
	Name     string
	Projects []*ProjectView
}

// ProjectView is a project node in the roadmap.
type ProjectView struct {
	ID          string
	Name        string
	Description string
	TicketCount int
	TicketsDone int
	Tickets     []*TicketView
}

// TicketView is a ticket node in the roadmap, display fields only.
type TicketView struct {
	ID        string
	Title     string
	Status    string
	Priority  string
	Tags      []string
	TaskCount int
	TasksDone int
	Tasks     []*TaskView
}

// TaskView is a task leaf in the roadmap, display fields only.
type TaskView struct {
	ID         string
	Title      string
	Status     string
	Priority   string
	Complexity string
}
