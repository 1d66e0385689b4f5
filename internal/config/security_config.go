package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() string
	GetMaxSessionAge() time.Duration
	GetSessionCookieName() string
	GetAuthFlowTimeout() time.Duration
}

// MinSessionSecretLength is the shortest SESSION_SECRET the cookie signer accepts
const MinSessionSecretLength = 16

type Security struct {
	SessionSecret     string        `env:"SESSION_SECRET,required,notEmpty"`
	MaxSessionAge     time.Duration `env:"SESSION_MAX_AGE" envDefault:"24h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
}

var _ SecurityConfig = Security{}

func (s Security) GetSessionSecret() string {
	return s.SessionSecret
}

func (s Security) GetMaxSessionAge() time.Duration {
	return s.MaxSessionAge
}

func (s Security) GetSessionCookieName() string {
	return s.SessionCookieName
}

func (Security) GetAuthFlowTimeout() time.Duration {
	return 10 * time.Minute // Enough for the provider round trip
}
