package lifecycle

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	if got := Normalize("completed"); got != "done" {
		t.Errorf("expected completed to normalize to done, got %q", got)
	}
	for _, s := range []string{"backlog", "planned", "in-progress", "done", "blocked", "pending"} {
		if got := Normalize(s); got != s {
			t.Errorf("expected %q to pass through, got %q", s, got)
		}
	}
}

func TestIsDone(t *testing.T) {
	if !IsDone("done") || !IsDone("completed") {
		t.Error("done and completed should both count as done")
	}
	if IsDone("in-progress") || IsDone("backlog") {
		t.Error("non-terminal statuses should not count as done")
	}
}

func TestValidTicketStatus(t *testing.T) {
	for _, s := range []string{"backlog", "planned", "in-progress", "done", "blocked", "completed"} {
		if !ValidTicketStatus(s) {
			t.Errorf("expected %q to be a valid ticket status", s)
		}
	}
	if ValidTicketStatus("pending") {
		t.Error("pending is a task status, not a ticket status")
	}
	if ValidTicketStatus("bogus") {
		t.Error("bogus should not be valid")
	}
}

func TestValidTaskStatus(t *testing.T) {
	for _, s := range []string{"pending", "in-progress", "done", "blocked", "completed"} {
		if !ValidTaskStatus(s) {
			t.Errorf("expected %q to be a valid task status", s)
		}
	}
	if ValidTaskStatus("planned") {
		t.Error("planned is a ticket status, not a task status")
	}
}

func TestApplyTicketTransition(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	result := ApplyTicketTransition("in-progress", now)
	if result.Status != "in-progress" {
		t.Errorf("expected status in-progress, got %q", result.Status)
	}
	if result.StartedAt == nil || !result.StartedAt.Equal(now) {
		t.Error("expected StartedAt to be stamped")
	}
	if result.CompletedAt != nil {
		t.Error("expected CompletedAt to be nil")
	}

	result = ApplyTicketTransition("done", now)
	if result.CompletedAt == nil || !result.CompletedAt.Equal(now) {
		t.Error("expected CompletedAt to be stamped")
	}
	if result.StartedAt != nil {
		t.Error("expected StartedAt to be nil")
	}

	// The legacy alias stamps completion and is rewritten to done.
	result = ApplyTicketTransition("completed", now)
	if result.Status != "done" {
		t.Errorf("expected completed to normalize to done, got %q", result.Status)
	}
	if result.CompletedAt == nil {
		t.Error("expected CompletedAt to be stamped via the alias")
	}

	// No side effects for other statuses.
	result = ApplyTicketTransition("blocked", now)
	if result.StartedAt != nil || result.CompletedAt != nil {
		t.Error("expected no timestamps for blocked")
	}
}

func TestApplyTaskTransition(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	result := ApplyTaskTransition("done", now)
	if result.Status != "done" || result.CompletedAt == nil {
		t.Error("expected done with CompletedAt stamped")
	}

	result = ApplyTaskTransition("completed", now)
	if result.Status != "done" || result.CompletedAt == nil {
		t.Error("expected alias to normalize and stamp CompletedAt")
	}

	// Tasks never stamp a start time.
	result = ApplyTaskTransition("in-progress", now)
	if result.CompletedAt != nil {
		t.Error("expected no CompletedAt for in-progress")
	}
}
