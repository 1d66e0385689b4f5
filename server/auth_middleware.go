package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/station-portal/identity"
	"github.com/jrsteele09/station-portal/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyIdentity stores the authenticated user's identity
	ContextKeyIdentity ContextKey = "identity"
	// ContextKeySessionID stores the session the identity came from
	ContextKeySessionID ContextKey = "session_id"
)

// RequireSession is the authorization gate for server-rendered pages.
// Without a live session the request is redirected to the login route and next never runs.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx, ok := s.authorize(r)
			if !ok {
				s.metrics.RecordGateDecision(metrics.DecisionRedirected)
				http.Redirect(w, r, RouteLogin, http.StatusFound)
				return
			}
			s.metrics.RecordGateDecision(metrics.DecisionAllowed)
			next(w, r.WithContext(ctx))
		}
	}
}

// authorize resolves the request's session. On success it returns a context carrying the identity.
func (s *Server) authorize(r *http.Request) (context.Context, bool) {
	record, err := s.sessions.Load(r)
	if err != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("No session, redirecting to login")
		return nil, false
	}

	id := record.Identity
	ctx := context.WithValue(r.Context(), ContextKeyIdentity, &id)
	ctx = context.WithValue(ctx, ContextKeySessionID, record.ID)
	return ctx, true
}

// IdentityFromContext returns the identity placed on the context by RequireSession
func IdentityFromContext(ctx context.Context) (*identity.Identity, bool) {
	id, ok := ctx.Value(ContextKeyIdentity).(*identity.Identity)
	return id, ok && id != nil
}

// SessionIDFromContext returns the id of the session RequireSession resolved
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeySessionID).(string)
	return id, ok && id != ""
}
