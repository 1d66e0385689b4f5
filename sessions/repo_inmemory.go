package sessions

import (
	"fmt"
	"maps"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/station-portal/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of Repo
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Record // sessionID -> Record
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions: make(map[string]Record),
	}
}

// Upsert creates or replaces a session
func (r *InMemoryRepo) Upsert(sessionID string, record Record) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = sessionID
	r.sessions[sessionID] = copyRecord(record)
	return nil
}

// Get retrieves a session by ID
func (r *InMemoryRepo) Get(sessionID string) (Record, error) {
	if sessionID == "" {
		return Record{}, fmt.Errorf("sessionID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.sessions[sessionID]
	if !ok {
		return Record{}, apperrors.ErrSessionNotFound
	}
	return copyRecord(record), nil
}

// Delete removes a session
func (r *InMemoryRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

// DeleteExpired removes every session expired at now
func (r *InMemoryRepo) DeleteExpired(now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, record := range r.sessions {
		if record.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (r *InMemoryRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// copyRecord detaches the claims map so callers cannot modify stored state
func copyRecord(record Record) Record {
	if record.Identity.Claims != nil {
		record.Identity.Claims = maps.Clone(record.Identity.Claims)
	}
	return record
}
