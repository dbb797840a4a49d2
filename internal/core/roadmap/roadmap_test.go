package roadmap

import "testing"

func TestCompletionPct(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{1, 2, 50.0},
		{0, 0, 0},
		{3, 3, 100.0},
		{1, 3, 33.3},
		{2, 3, 66.7},
	}
	for _, tt := range tests {
		if got := CompletionPct(tt.done, tt.total); got != tt.want {
			t.Errorf("CompletionPct(%d, %d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestCountDone(t *testing.T) {
	statuses := []string{"done", "completed", "pending", "in-progress", "blocked"}
	if got := CountDone(statuses); got != 2 {
		t.Errorf("expected 2 done (including legacy alias), got %d", got)
	}
	if got := CountDone(nil); got != 0 {
		t.Errorf("expected 0 for empty set, got %d", got)
	}
}

func TestTally(t *testing.T) {
	var tally Tally

	done := tally.AddTicket("done", []string{"done", "pending"})
	if done != 1 {
		t.Errorf("expected 1 task done for ticket, got %d", done)
	}
	tally.AddTicket("backlog", []string{"completed", "done"})

	if tally.TotalTickets != 2 || tally.TicketsDone != 1 {
		t.Errorf("ticket counts wrong: %+v", tally)
	}
	if tally.TotalTasks != 4 || tally.TasksDone != 3 {
		t.Errorf("task counts wrong: %+v", tally)
	}
	if got := tally.CompletionPct(); got != 75.0 {
		t.Errorf("expected 75.0, got %v", got)
	}
}
