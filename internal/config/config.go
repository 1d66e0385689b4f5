package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	Auth0Config
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
}

type mainConfig struct {
	EnvVars
	Auth0
	Security
}

// New builds the configuration from the process environment.
// Missing required Auth0 or session variables are reported together.
func New() (Config, error) {
	c := mainConfig{}
	if err := env.Parse(&c.Auth0); err != nil {
		return nil, fmt.Errorf("[config New] parse auth0 env: %w", err)
	}
	if err := env.Parse(&c.Security); err != nil {
		return nil, fmt.Errorf("[config New] parse security env: %w", err)
	}
	if len(c.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("[config New] SESSION_SECRET must be at least %d bytes", MinSessionSecretLength)
	}
	return c, nil
}

// Load reads envFile into the environment, when it exists, and then calls New.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("[config Load] load %s: %w", envFile, err)
			}
		}
	}
	return New()
}
