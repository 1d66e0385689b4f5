package sessions

import "time"

// Repo defines the interface for session storage operations.
// Implementations must give atomic per-key reads and writes.
type Repo interface {
	// Upsert creates or replaces a session
	Upsert(sessionID string, record Record) error

	// Get retrieves a session by ID
	Get(sessionID string) (Record, error)

	// Delete removes a session by ID. Deleting an unknown session is not an error.
	Delete(sessionID string) error

	// DeleteExpired removes sessions that have expired at now and returns how many were removed
	DeleteExpired(now time.Time) (int, error)

	// Count returns the number of stored sessions
	Count() int
}
