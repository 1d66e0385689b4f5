package sessions

import (
	"time"

	"github.com/jrsteele09/station-portal/identity"
)

// Record is a server-side login session.
// A record exists only between a successful callback and logout or expiry.
type Record struct {
	ID        string            // Unique session identifier (UUID)
	Identity  identity.Identity // Who is logged in
	CreatedAt time.Time         // When the callback completed
	ExpiresAt time.Time         // When the session stops being valid
}

// Expired reports whether the record is no longer valid at now
func (r Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}
