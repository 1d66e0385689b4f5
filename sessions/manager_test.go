package sessions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/station-portal/internal/errors"
	"github.com/jrsteele09/station-portal/sessions"
	"github.com/stretchr/testify/require"
)

const testCookieName = "session"

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestManager(t *testing.T) (*sessions.Manager, *sessions.InMemoryRepo, *testClock) {
	t.Helper()
	repo := sessions.NewInMemoryRepo()
	clock := &testClock{now: time.Now()}
	m, err := sessions.NewManager(repo, testSecret, testCookieName, time.Hour, sessions.WithClock(clock.Now))
	require.NoError(t, err)
	return m, repo, clock
}

// requestWithCookies copies the cookies set on rec onto a new request
func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 && c.Value != "" {
			r.AddCookie(c)
		}
	}
	return r
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", testCookieName)
	return nil
}

func TestNewManager_Validation(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	_, err := sessions.NewManager(nil, testSecret, testCookieName, time.Hour)
	require.Error(t, err)
	_, err = sessions.NewManager(repo, "short", testCookieName, time.Hour)
	require.Error(t, err)
	_, err = sessions.NewManager(repo, testSecret, "", time.Hour)
	require.Error(t, err)
	_, err = sessions.NewManager(repo, testSecret, testCookieName, 0)
	require.Error(t, err)
}

func TestManager_CreateAndLoad(t *testing.T) {
	m, repo, _ := newTestManager(t)
	id := testIdentity()

	rec := httptest.NewRecorder()
	record, err := m.Create(rec, httptest.NewRequest(http.MethodGet, "/callback", nil), &id)
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)
	require.Equal(t, 1, repo.Count())

	cookie := sessionCookie(t, rec)
	require.True(t, cookie.HttpOnly)
	require.False(t, cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, 3600, cookie.MaxAge)
	require.NotContains(t, cookie.Value, "Alice")

	loaded, err := m.Load(requestWithCookies(rec))
	require.NoError(t, err)
	require.Equal(t, record.ID, loaded.ID)
	require.Equal(t, "Alice", loaded.Identity.Name)
}

func TestManager_CreateSecureCookieBehindProxy(t *testing.T) {
	m, _, _ := newTestManager(t)
	id := testIdentity()

	r := httptest.NewRequest(http.MethodGet, "/callback", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	_, err := m.Create(rec, r, &id)
	require.NoError(t, err)
	require.True(t, sessionCookie(t, rec).Secure)
}

func TestIsSecureRequest(t *testing.T) {
	tests := []struct {
		name  string
		proto string
		want  bool
	}{
		{name: "plain http", proto: "", want: false},
		{name: "proxy https", proto: "https", want: true},
		{name: "proxy https upper case", proto: "HTTPS", want: true},
		{name: "proxy http", proto: "http", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.proto != "" {
				r.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			require.Equal(t, tt.want, sessions.IsSecureRequest(r))
		})
	}
}

func TestManager_CreateReplacesPreviousSession(t *testing.T) {
	m, repo, _ := newTestManager(t)
	id := testIdentity()

	first := httptest.NewRecorder()
	firstRecord, err := m.Create(first, httptest.NewRequest(http.MethodGet, "/callback", nil), &id)
	require.NoError(t, err)

	second := httptest.NewRecorder()
	secondRecord, err := m.Create(second, requestWithCookies(first), &id)
	require.NoError(t, err)
	require.NotEqual(t, firstRecord.ID, secondRecord.ID)
	require.Equal(t, 1, repo.Count())

	_, err = repo.Get(firstRecord.ID)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestManager_Load(t *testing.T) {
	t.Run("no cookie", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		_, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: testCookieName, Value: "forged"})
		_, err := m.Load(r)
		require.ErrorIs(t, err, apperrors.ErrInvalidSession)
	})

	t.Run("expired session is removed", func(t *testing.T) {
		m, repo, clock := newTestManager(t)
		id := testIdentity()
		rec := httptest.NewRecorder()
		_, err := m.Create(rec, httptest.NewRequest(http.MethodGet, "/callback", nil), &id)
		require.NoError(t, err)

		clock.now = clock.now.Add(time.Hour)
		_, err = m.Load(requestWithCookies(rec))
		require.ErrorIs(t, err, apperrors.ErrSessionExpired)
		require.Equal(t, 0, repo.Count())
	})
}

func TestManager_Destroy(t *testing.T) {
	m, repo, _ := newTestManager(t)
	id := testIdentity()
	rec := httptest.NewRecorder()
	_, err := m.Create(rec, httptest.NewRequest(http.MethodGet, "/callback", nil), &id)
	require.NoError(t, err)

	r := requestWithCookies(rec)
	for i := 0; i < 2; i++ {
		out := httptest.NewRecorder()
		require.NoError(t, m.Destroy(out, r))
		require.Equal(t, -1, sessionCookie(t, out).MaxAge)
	}
	require.Equal(t, 0, repo.Count())

	_, err = m.Load(r)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	require.NoError(t, m.Destroy(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestManager_Sweep(t *testing.T) {
	m, repo, clock := newTestManager(t)
	id := testIdentity()
	_, err := m.Create(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback", nil), &id)
	require.NoError(t, err)

	require.Equal(t, 0, m.Sweep())
	clock.now = clock.now.Add(2 * time.Hour)
	require.Equal(t, 1, m.Sweep())
	require.Equal(t, 0, repo.Count())
}

func TestManager_RunSweeperStops(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
