package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// LogoutHandler clears the local session and hands the browser to the provider's logout (GET /logout).
// The local clear happens before the redirect, whatever the provider does afterwards.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, ok := IdentityFromContext(r.Context()); ok {
			sessionID, _ := SessionIDFromContext(r.Context())
			log.Info().Stringer("user", id).Str("session", sessionID).Msg("User logged out")
		}

		if err := s.sessions.Destroy(w, r); err != nil {
			log.Err(err).Msg("Logout: failed to delete login session")
		}
		s.metrics.RecordLogout()

		returnTo := s.externalURL(r, RouteHome)
		http.Redirect(w, r, s.provider.LogoutURL(returnTo), http.StatusFound)
	}
}
