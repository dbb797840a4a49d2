// Package app contains the service implementations: the imperative
// shell orchestrating repositories around the pure core packages.
package app

import "time"

// nowStamp returns the current UTC time in the RFC 3339 form all
// timestamps are stored in.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
