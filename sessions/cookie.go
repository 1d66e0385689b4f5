package sessions

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/station-portal/internal/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	cookieKeyInfo   = "station-portal session cookie v1"
	cookieKeyLength = 32
	minSecretLength = 16
)

// CookieCodec signs session IDs into cookie values and verifies them on the way back.
// The value is an HS256 JWT whose jti is the session ID.
type CookieCodec struct {
	key []byte
}

// NewCookieCodec derives the signing key from the configured session secret
func NewCookieCodec(secret string) (*CookieCodec, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecretLength)
	}

	key := make([]byte, cookieKeyLength)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(cookieKeyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive cookie key: %w", err)
	}
	return &CookieCodec{key: key}, nil
}

// Encode returns the signed cookie value for sessionID
func (c *CookieCodec) Encode(sessionID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and returns the session ID it carries
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidSession, err)
	}
	if claims.ID == "" {
		return "", apperrors.ErrInvalidSession
	}
	return claims.ID, nil
}
