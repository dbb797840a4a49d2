// Package interchange implements the JSON bundle format used to move a
// whole database between installations: flat record arrays per entity
// type plus the task dependency edge list.
package interchange

// Bundle is the on-disk interchange document.
type Bundle struct {
	ExportedAt       string       `json:"exported_at,omitempty"`
	Orgs             []Org        `json:"orgs"`
	Projects         []Project    `json:"projects"`
	Tickets          []Ticket     `json:"tickets"`
	Tasks            []Task       `json:"tasks"`
	Notes            []Note       `json:"notes"`
	TaskDependencies []Dependency `json:"task_dependencies"`
}

// Org is one exported org record.
type Org struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Project is one exported project record.
type Project struct {
	ID          string `json:"id"`
	OrgID       string `json:"org_id"`
	Name        string `json:"name"`
	RepoPath    string `json:"repo_path,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Ticket is one exported ticket record.
type Ticket struct {
	ID                 string         `json:"id"`
	ProjectID          string         `json:"project_id"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	Status             string         `json:"status"`
	Priority           string         `json:"priority"`
	CreatedAt          string         `json:"created_at,omitempty"`
	StartedAt          string         `json:"started_at,omitempty"`
	CompletedAt        string         `json:"completed_at,omitempty"`
	Assignees          []string       `json:"assignees,omitempty"`
	Tags               []string       `json:"tags,omitempty"`
	RelatedRepos       []string       `json:"related_repos,omitempty"`
	AcceptanceCriteria []string       `json:"acceptance_criteria,omitempty"`
	Blockers           []string       `json:"blockers,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// Task is one exported task record.
type Task struct {
	ID                 string         `json:"id"`
	TicketID           string         `json:"ticket_id"`
	Title              string         `json:"title"`
	Details            string         `json:"details,omitempty"`
	Status             string         `json:"status"`
	Priority           string         `json:"priority,omitempty"`
	Complexity         string         `json:"complexity,omitempty"`
	CreatedAt          string         `json:"created_at,omitempty"`
	CompletedAt        string         `json:"completed_at,omitempty"`
	AcceptanceCriteria []string       `json:"acceptance_criteria,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// Note is one exported note record.
type Note struct {
	ID         string `json:"id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Dependency is one exported task dependency edge.
type Dependency struct {
	TaskID      string `json:"task_id"`
	DependsOnID string `json:"depends_on_id"`
}
