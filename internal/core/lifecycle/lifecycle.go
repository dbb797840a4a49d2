// Package lifecycle contains the pure business logic for status
// transitions. This is part of the Functional Core - no I/O, only pure
// functions.
//
// The status model is deliberately permissive: any state may move to
// any other state. Transitions carry side effects (timestamps) rather
// than guards, modeled as plain enumerations plus a side-effect table.
package lifecycle

import "time"

// Ticket statuses.
const (
	TicketBacklog    = "backlog"
	TicketPlanned    = "planned"
	TicketInProgress = "in-progress"
	TicketDone       = "done"
	TicketBlocked    = "blocked"
)

// Task statuses. Tasks mirror tickets without the planned state.
const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskDone       = "done"
	TaskBlocked    = "blocked"
)

// StatusCompleted is the legacy alias for done, still present in old
// exports. It is accepted everywhere done is accepted and rewritten to
// done before storage - never stored verbatim.
const StatusCompleted = "completed"

// Priorities shared by tickets and tasks.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Task complexities.
const (
	ComplexitySimple  = "simple"
	ComplexityMedium  = "medium"
	ComplexityComplex = "complex"
)

var ticketStatuses = map[string]bool{
	TicketBacklog:    true,
	TicketPlanned:    true,
	TicketInProgress: true,
	TicketDone:       true,
	TicketBlocked:    true,
	StatusCompleted:  true,
}

var taskStatuses = map[string]bool{
	TaskPending:     true,
	TaskInProgress:  true,
	TaskDone:        true,
	TaskBlocked:     true,
	StatusCompleted: true,
}

var priorities = map[string]bool{
	PriorityCritical: true,
	PriorityHigh:     true,
	PriorityMedium:   true,
	PriorityLow:      true,
}

var complexities = map[string]bool{
	ComplexitySimple:  true,
	ComplexityMedium:  true,
	ComplexityComplex: true,
}

// Normalize collapses the legacy completed alias to done. All other
// values pass through unchanged. Applied on both write and read so the
// alias never leaks out of storage.
func Normalize(status string) string {
	if status == StatusCompleted {
		return TicketDone
	}
	return status
}

// IsDone reports whether a status counts as terminal for aggregation,
// accepting the legacy alias.
func IsDone(status string) bool {
	return status == TicketDone || status == StatusCompleted
}

// ValidTicketStatus reports whether s is an accepted ticket status
// (including the legacy alias).
func ValidTicketStatus(s string) bool { return ticketStatuses[s] }

// ValidTaskStatus reports whether s is an accepted task status
// (including the legacy alias).
func ValidTaskStatus(s string) bool { return taskStatuses[s] }

// ValidPriority reports whether s is an accepted priority.
func ValidPriority(s string) bool { return priorities[s] }

// ValidComplexity reports whether s is an accepted complexity.
func ValidComplexity(s string) bool { return complexities[s] }

// TicketTransition captures the result of a ticket status change: the
// normalized status plus any timestamp side effects.
type TicketTransition struct {
	Status      string
	StartedAt   *time.Time // set when transitioning into in-progress
	CompletedAt *time.Time // set when transitioning into done
}

// ApplyTicketTransition applies a ticket status change and returns the
// normalized status with its side effects. The caller passes the
// current time to keep this testable. Transitions re-stamp on re-entry
// into the same state; that matches the historical behavior and is
// preserved for compatibility.
func ApplyTicketTransition(newStatus string, now time.Time) TicketTransition {
	result := TicketTransition{Status: Normalize(newStatus)}

	switch result.Status {
	case TicketInProgress:
		result.StartedAt = &now
	case TicketDone:
		result.CompletedAt = &now
	}

	return result
}

// TaskTransition captures the result of a task status change. Tasks
// only stamp completion; there is no started_at on tasks.
type TaskTransition struct {
	Status      string
	CompletedAt *time.Time // set when transitioning into done
}

// ApplyTaskTransition applies a task status change and returns the
// normalized status with its side effects.
func ApplyTaskTransition(newStatus string, now time.Time) TaskTransition {
	result := TaskTransition{Status: Normalize(newStatus)}

	if result.Status == TaskDone {
		result.CompletedAt = &now
	}

	return result
}

// InitialTicketStatus returns the status for a new ticket when the
// caller does not supply one.
func InitialTicketStatus() string { return TicketBacklog }

// InitialTaskStatus returns the status for a new task when the caller
// does not supply one.
func InitialTaskStatus() string { return TaskPending }

// DefaultPriority returns the priority used when none is supplied.
func DefaultPriority() string { return PriorityMedium }

// DefaultComplexity returns the complexity used when none is supplied.
func DefaultComplexity() string { return ComplexityMedium }
