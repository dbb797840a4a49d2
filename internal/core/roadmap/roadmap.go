// Package roadmap contains the pure roll-up arithmetic for the
// aggregated tree view. This is part of the Functional Core - no I/O,
// only pure functions.
package roadmap

import (
	"math"

	"github.com/example/tpm/internal/core/lifecycle"
)

// Tally accumulates roll-up counts across the whole tree in a single
// bottom-up pass. Counts are derived at read time, never stored.
type Tally struct {
	TotalTickets int
	TicketsDone  int
	TotalTasks   int
	TasksDone    int
}

// AddTicket records one ticket and its task statuses, returning how
// many of the tasks count as done (for the per-ticket view node).
func (t *Tally) AddTicket(ticketStatus string, taskStatuses []string) int {
	t.TotalTickets++
	if lifecycle.IsDone(ticketStatus) {
		t.TicketsDone++
	}

	done := CountDone(taskStatuses)
	t.TotalTasks += len(taskStatuses)
	t.TasksDone += done
	return done
}

// CompletionPct returns the tally's overall task completion percentage.
func (t *Tally) CompletionPct() float64 {
	return CompletionPct(t.TasksDone, t.TotalTasks)
}

// CountDone counts statuses that are terminal, accepting the legacy
// completed alias.
func CountDone(statuses []string) int {
	done := 0
	for _, s := range statuses {
		if lifecycle.IsDone(s) {
			done++
		}
	}
	return done
}

// CompletionPct computes done/total as a percentage rounded to one
// decimal place. Zero totals yield 0 rather than dividing by zero.
func CompletionPct(done, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(done) / float64(total) * 100
	return math.Round(pct*10) / 10
}
