package server

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/jrsteele09/station-portal/sessions"
)

const (
	// authStateCookieName binds a pending login to the browser that started it
	authStateCookieName = "auth_state"
)

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (s *Server) setAuthStateCookie(w http.ResponseWriter, r *http.Request, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authStateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   sessions.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetAuthFlowTimeout().Seconds()),
	})
}

func (s *Server) clearAuthStateCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authStateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   sessions.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
