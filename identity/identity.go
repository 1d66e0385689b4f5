package identity

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/jrsteele09/station-portal/internal/errors"
)

// Claims is the raw userinfo payload returned by the identity provider.
// Only sub, name and picture are interpreted; the rest is carried for display.
type Claims map[string]any

// String returns the claim as a string, or "" when missing or not a string
func (c Claims) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// Pretty renders the claims as indented JSON
func (c Claims) Pretty() string {
	if len(c) == 0 {
		return "{}"
	}
	b, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Identity is the authenticated user as stored in a session
type Identity struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`

	Claims Claims `json:"-"`
}

// FromClaims extracts the identity fields from a userinfo payload.
// The subject is mandatory, name and picture may be empty.
func FromClaims(claims Claims) (*Identity, error) {
	sub := claims.String("sub")
	if sub == "" {
		return nil, apperrors.ErrMissingSubject
	}
	return &Identity{
		UserID:  sub,
		Name:    claims.String("name"),
		Picture: claims.String("picture"),
		Claims:  claims,
	}, nil
}

func (i *Identity) String() string {
	return fmt.Sprintf("%s (%s)", i.Name, i.UserID)
}

// Provider is the client side of an OAuth2/OIDC authorization code flow
type Provider interface {
	// AuthCodeURL builds the provider authorization URL for a new login
	AuthCodeURL(state, nonce string) string

	// Exchange trades an authorization code for tokens and fetches the user's profile.
	// nonce is the value sent with AuthCodeURL and is checked against any returned ID token.
	Exchange(ctx context.Context, code, nonce string) (*Identity, error)

	// LogoutURL builds the provider logout URL that returns the browser to returnTo
	LogoutURL(returnTo string) string
}
