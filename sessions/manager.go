package sessions

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/station-portal/identity"
	apperrors "github.com/jrsteele09/station-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

// Manager ties the session store to the browser cookie that names a session
type Manager struct {
	repo       Repo
	codec      *CookieCodec
	cookieName string
	maxAge     time.Duration
	now        func() time.Time
}

type ManagerOption func(*Manager)

// WithClock overrides time.Now, for tests
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(repo Repo, secret, cookieName string, maxAge time.Duration, opts ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, fmt.Errorf("[sessions NewManager] repo is required")
	}
	if cookieName == "" {
		return nil, fmt.Errorf("[sessions NewManager] cookie name is required")
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("[sessions NewManager] session max age must be greater than 0")
	}
	codec, err := NewCookieCodec(secret)
	if err != nil {
		return nil, fmt.Errorf("[sessions NewManager] %w", err)
	}

	m := &Manager{
		repo:       repo,
		codec:      codec,
		cookieName: cookieName,
		maxAge:     maxAge,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Create stores a new session for id, replacing any session the request already carries,
// and sets the session cookie on w.
func (m *Manager) Create(w http.ResponseWriter, r *http.Request, id *identity.Identity) (Record, error) {
	if id == nil {
		return Record{}, fmt.Errorf("[sessions Create] identity is required")
	}
	if previousID, err := m.sessionID(r); err == nil {
		if err := m.repo.Delete(previousID); err != nil {
			log.Warn().Err(err).Msg("Failed to delete previous session")
		}
	}

	now := m.now()
	record := Record{
		ID:        uuid.NewString(),
		Identity:  *id,
		CreatedAt: now,
		ExpiresAt: now.Add(m.maxAge),
	}
	if err := m.repo.Upsert(record.ID, record); err != nil {
		return Record{}, fmt.Errorf("[sessions Create] failed to store session: %w", err)
	}

	value, err := m.codec.Encode(record.ID, record.CreatedAt, record.ExpiresAt)
	if err != nil {
		_ = m.repo.Delete(record.ID)
		return Record{}, fmt.Errorf("[sessions Create] %w", err)
	}
	m.setCookie(w, r, value, int(m.maxAge.Seconds()))
	return record, nil
}

// Load returns the live session named by the request cookie.
// Expired sessions are removed as they are found.
func (m *Manager) Load(r *http.Request) (Record, error) {
	sessionID, err := m.sessionID(r)
	if err != nil {
		return Record{}, err
	}

	record, err := m.repo.Get(sessionID)
	if err != nil {
		return Record{}, err
	}

	if record.Expired(m.now()) {
		if err := m.repo.Delete(sessionID); err != nil {
			log.Warn().Err(err).Msg("Failed to delete expired session")
		}
		return Record{}, apperrors.ErrSessionExpired
	}
	return record, nil
}

// Destroy deletes the request's session, if any, and always expires the cookie
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	defer m.setCookie(w, r, "", -1)

	sessionID, err := m.sessionID(r)
	if err != nil {
		return nil // Nothing to delete
	}
	if err := m.repo.Delete(sessionID); err != nil {
		return fmt.Errorf("[sessions Destroy] failed to delete session: %w", err)
	}
	return nil
}

// Count returns the number of stored sessions, live or not yet swept
func (m *Manager) Count() int {
	return m.repo.Count()
}

// Sweep removes expired sessions
func (m *Manager) Sweep() int {
	removed, err := m.repo.DeleteExpired(m.now())
	if err != nil {
		log.Err(err).Msg("Failed to delete expired sessions")
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.Sweep(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("Expired sessions swept")
			}
		}
	}
}

func (m *Manager) sessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", apperrors.ErrSessionNotFound
	}
	return m.codec.Decode(cookie.Value)
}

func (m *Manager) setCookie(w http.ResponseWriter, r *http.Request, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// IsSecureRequest reports whether the browser reached us over https, directly or through a proxy
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
