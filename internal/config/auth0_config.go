package config

import "strings"

type Auth0Config interface {
	GetCallbackURL() string
	GetClientID() string
	GetClientSecret() string
	GetDomain() string
	GetProviderBaseURL() string
	GetAudience() string
}

// Auth0 holds the identity provider settings. All fields are required.
type Auth0 struct {
	CallbackURL  string `env:"AUTH0_CALLBACK_URL,required,notEmpty"`
	ClientID     string `env:"AUTH0_CLIENT_ID,required,notEmpty"`
	ClientSecret string `env:"AUTH0_CLIENT_SECRET,required,notEmpty"`
	Domain       string `env:"AUTH0_DOMAIN,required,notEmpty"`
	Audience     string `env:"AUTH0_AUDIENCE,required,notEmpty"`
}

var _ Auth0Config = Auth0{}

func (a Auth0) GetCallbackURL() string {
	return a.CallbackURL
}

func (a Auth0) GetClientID() string {
	return a.ClientID
}

func (a Auth0) GetClientSecret() string {
	return a.ClientSecret
}

func (a Auth0) GetDomain() string {
	return a.Domain
}

// GetProviderBaseURL returns the provider's base URL, e.g. "https://tenant.eu.auth0.com"
func (a Auth0) GetProviderBaseURL() string {
	domain := strings.TrimSuffix(a.Domain, "/")
	if strings.HasPrefix(domain, "https://") || strings.HasPrefix(domain, "http://") {
		return domain
	}
	return "https://" + domain
}

func (a Auth0) GetAudience() string {
	return a.Audience
}
