// Package identity contains the pure business logic for identifier
// resolution. This is part of the Functional Core - no I/O, only pure
// functions (ID generation excepted, which reads entropy).
package identity

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Normalize lowercases an identifier for case-insensitive matching.
// Comparison happens against the normalized form only; the stored
// casing is never rewritten.
func Normalize(id string) string {
	return strings.ToLower(id)
}

// Canonical picks the identifier a record should be stored under.
// If a case-insensitive match already exists its stored casing wins,
// otherwise the normalized form becomes canonical.
func Canonical(candidate, stored string) string {
	if stored != "" {
		return stored
	}
	return Normalize(candidate)
}

// NewID returns a short random identifier for entities addressed by
// human-chosen or opaque IDs (orgs, projects, notes).
func NewID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err) // entropy exhaustion is not recoverable
	}
	return hex.EncodeToString(b[:])
}
