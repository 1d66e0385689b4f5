package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/station-portal/internal/metrics"
	"github.com/jrsteele09/station-portal/server/authflowrepo"
	"github.com/rs/zerolog/log"
)

// LoginHandler starts the authorization code flow (GET /login).
// It never touches the login session; that only happens in the callback.
func (s *Server) LoginHandler() http.HandlerFunc {
	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		state := generateRandomString(32)
		nonce := generateRandomString(32)

		err := s.authState.Upsert(state, &authflowrepo.AuthFlowState{
			Nonce:     nonce,
			CreatedAt: s.now(),
		})
		if err != nil {
			return fmt.Errorf("[LoginHandler] failed to store auth state: %w", err)
		}
		s.setAuthStateCookie(w, r, state)

		log.Debug().Msg("Redirecting to identity provider")
		s.metrics.RecordLogin(metrics.LoginStarted)
		http.Redirect(w, r, s.provider.AuthCodeURL(state, nonce), http.StatusFound)
		return nil
	})
}
