package identity_test

import (
	"testing"

	"github.com/jrsteele09/station-portal/identity"
	apperrors "github.com/jrsteele09/station-portal/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestFromClaims(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		claims := identity.Claims{
			"sub":     "auth0|123",
			"name":    "Alice",
			"picture": "http://x/a.png",
			"email":   "alice@example.com",
		}
		id, err := identity.FromClaims(claims)
		require.NoError(t, err)
		require.Equal(t, "auth0|123", id.UserID)
		require.Equal(t, "Alice", id.Name)
		require.Equal(t, "http://x/a.png", id.Picture)
		require.Equal(t, "alice@example.com", id.Claims.String("email"))
	})

	t.Run("optional fields missing", func(t *testing.T) {
		id, err := identity.FromClaims(identity.Claims{"sub": "auth0|123"})
		require.NoError(t, err)
		require.Empty(t, id.Name)
		require.Empty(t, id.Picture)
	})

	t.Run("non string claim ignored", func(t *testing.T) {
		id, err := identity.FromClaims(identity.Claims{"sub": "auth0|123", "name": 42})
		require.NoError(t, err)
		require.Empty(t, id.Name)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := identity.FromClaims(identity.Claims{"name": "Alice"})
		require.ErrorIs(t, err, apperrors.ErrMissingSubject)
	})
}

func TestClaims_Pretty(t *testing.T) {
	require.Equal(t, "{}", identity.Claims{}.Pretty())
	require.Equal(t, "{\n    \"sub\": \"auth0|123\"\n}", identity.Claims{"sub": "auth0|123"}.Pretty())
}

func TestIdentity_String(t *testing.T) {
	id := identity.Identity{UserID: "auth0|123", Name: "Alice"}
	require.Equal(t, "Alice (auth0|123)", id.String())
}
