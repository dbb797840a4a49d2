// Package ticketid contains the pure business logic for structured
// ticket and task identifiers. This is part of the Functional Core -
// no I/O, only pure functions.
package ticketid

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultPrefix is used when no prefix is supplied and none can be
// derived from the parent project.
const DefaultPrefix = "TICKET"

// legacyTicketPrefixes are stripped from a ticket ID when deriving the
// task numbering scope (oldest data used TICKET-/FEAT-/ISSUE- schemes).
var legacyTicketPrefixes = []string{"TICKET-", "FEAT-", "ISSUE-"}

// SanitizePrefix uppercases a caller-supplied or project-derived prefix
// and strips separators so the result is a single alphabetic token.
func SanitizePrefix(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// Format renders a ticket ID as {PREFIX}-{NNN}. Numbers are zero-padded
// to three digits; beyond 999 the field simply widens.
func Format(prefix string, num int) string {
	return fmt.Sprintf("%s-%03d", prefix, num)
}

// NumericSuffix extracts the trailing number of a ticket ID
// (e.g. "SENTRY-003" -> 3). Returns false for IDs whose last segment is
// not numeric; callers skip those rather than failing.
func NumericSuffix(id string) (int, bool) {
	idx := strings.LastIndex(id, "-")
	if idx < 0 || idx == len(id)-1 {
		return 0, false
	}
	num, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0, false
	}
	return num, true
}

// NextNumber returns max(numeric suffixes)+1 for a set of existing
// ticket IDs. Deriving from the maximum rather than a count means
// numbers are never reused after deletions or out-of-order replays.
func NextNumber(existingIDs []string) int {
	maxNum := 0
	for _, id := range existingIDs {
		if num, ok := NumericSuffix(id); ok && num > maxNum {
			maxNum = num
		}
	}
	return maxNum + 1
}

// TicketNumber returns the numbering scope of a ticket for its tasks:
// the ticket ID with any known legacy prefix stripped, or the full ID
// if none match.
func TicketNumber(ticketID string) string {
	for _, p := range legacyTicketPrefixes {
		if strings.HasPrefix(ticketID, p) {
			return strings.TrimPrefix(ticketID, p)
		}
	}
	return ticketID
}

// TaskID renders a task ID as TASK-{ticket-number}-{n}, where n is
// 1-based and scoped to the parent ticket.
func TaskID(ticketID string, n int) string {
	return fmt.Sprintf("TASK-%s-%d", TicketNumber(ticketID), n)
}
