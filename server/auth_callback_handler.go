package server

import (
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/station-portal/internal/errors"
	"github.com/jrsteele09/station-portal/internal/metrics"
	"github.com/rs/zerolog/log"
)

// CallbackHandler completes the authorization code flow (GET /callback).
// On success the browser holds a fresh login session and is sent home.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		// Check for authorization errors reported by the provider
		if errorParam != "" {
			s.metrics.RecordLogin(metrics.LoginFailed)
			return apperrors.NewHTTPError(http.StatusUnauthorized,
				fmt.Errorf("%w: %s - %s", apperrors.ErrAuthorizationError, errorParam, errorDesc))
		}

		if code == "" || state == "" {
			s.metrics.RecordLogin(metrics.LoginFailed)
			return apperrors.NewHTTPError(http.StatusBadRequest, apperrors.ErrMissingCode)
		}

		nonce, err := s.consumeAuthState(w, r, state)
		if err != nil {
			s.metrics.RecordLogin(metrics.LoginFailed)
			return err
		}

		id, err := s.provider.Exchange(r.Context(), code, nonce)
		if err != nil {
			s.metrics.RecordLogin(metrics.LoginFailed)
			return fmt.Errorf("[CallbackHandler] %w", err)
		}

		if _, err := s.sessions.Create(w, r, id); err != nil {
			s.metrics.RecordLogin(metrics.LoginFailed)
			return fmt.Errorf("[CallbackHandler] failed to create session: %w", err)
		}

		log.Info().Stringer("user", id).Msg("User authenticated successfully")
		s.metrics.RecordLogin(metrics.LoginSucceeded)
		http.Redirect(w, r, RouteHome, http.StatusFound)
		return nil
	})
}

// consumeAuthState checks state against the browser's cookie and the stored flow, then forgets it.
// It returns the nonce sent with the authorization request.
func (s *Server) consumeAuthState(w http.ResponseWriter, r *http.Request, state string) (string, error) {
	invalid := apperrors.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidState)

	cookie, err := r.Cookie(authStateCookieName)
	if err != nil || cookie.Value != state {
		return "", invalid
	}
	s.clearAuthStateCookie(w, r)

	authState, err := s.authState.Get(state)
	if err != nil || authState == nil {
		return "", invalid
	}

	// State is single use
	if err := s.authState.Delete(state); err != nil {
		return "", fmt.Errorf("[CallbackHandler] failed to delete auth state: %w", err)
	}

	if s.now().Sub(authState.CreatedAt) > s.config.GetAuthFlowTimeout() {
		return "", invalid
	}
	return authState.Nonce, nil
}
