// Package auth0 implements identity.Provider against an Auth0 tenant
// using the standard OAuth2 and OIDC client libraries.
package auth0

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/station-portal/identity"
	apperrors "github.com/jrsteele09/station-portal/internal/errors"
	"golang.org/x/oauth2"
)

// Auth0 endpoint paths, relative to the tenant base URL
const (
	authorizePath = "/authorize"
	tokenPath     = "/oauth/token"
	userInfoPath  = "/userinfo"
	jwksPath      = "/.well-known/jwks.json"
	logoutPath    = "/v2/logout"
)

var defaultScopes = []string{oidc.ScopeOpenID, "profile", "email"}

type Options struct {
	BaseURL      string // e.g. "https://tenant.eu.auth0.com"
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Audience     string
	Scopes       []string     // defaults to openid profile email
	HTTPClient   *http.Client // optional, used for all provider calls
}

type Client struct {
	baseURL      string
	clientID     string
	audience     string
	httpClient   *http.Client
	provider     *oidc.Provider
	oauth2Config *oauth2.Config
	verifier     *oidc.IDTokenVerifier
}

var _ identity.Provider = (*Client)(nil)

// New builds a client from the well known Auth0 endpoints, without a discovery round trip.
// ctx is kept by the JWKS key set and should outlive the client.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.BaseURL == "" || opts.ClientID == "" || opts.CallbackURL == "" {
		return nil, fmt.Errorf("[auth0 New] base URL, client ID and callback URL are required")
	}
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("[auth0 New] invalid base URL: %w", err)
	}

	if opts.HTTPClient != nil {
		ctx = oidc.ClientContext(ctx, opts.HTTPClient)
	}

	providerConfig := &oidc.ProviderConfig{
		IssuerURL:   baseURL + "/",
		AuthURL:     baseURL + authorizePath,
		TokenURL:    baseURL + tokenPath,
		UserInfoURL: baseURL + userInfoPath,
		JWKSURL:     baseURL + jwksPath,
		Algorithms:  []string{oidc.RS256},
	}
	provider := providerConfig.NewProvider(ctx)

	endpoint := provider.Endpoint()
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	scopes := opts.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}

	return &Client{
		baseURL:    baseURL,
		clientID:   opts.ClientID,
		audience:   opts.Audience,
		httpClient: opts.HTTPClient,
		provider:   provider,
		oauth2Config: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  opts.CallbackURL,
			Scopes:       scopes,
		},
		verifier: provider.Verifier(&oidc.Config{
			ClientID: opts.ClientID,
		}),
	}, nil
}

func (c *Client) AuthCodeURL(state, nonce string) string {
	authOpts := []oauth2.AuthCodeOption{oidc.Nonce(nonce)}
	if c.audience != "" {
		authOpts = append(authOpts, oauth2.SetAuthURLParam("audience", c.audience))
	}
	return c.oauth2Config.AuthCodeURL(state, authOpts...)
}

func (c *Client) Exchange(ctx context.Context, code, nonce string) (*identity.Identity, error) {
	if c.httpClient != nil {
		ctx = oidc.ClientContext(ctx, c.httpClient)
	}

	token, err := c.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("[auth0 Exchange] token exchange failed: %w", err)
	}

	// Auth0 returns an ID token for the openid scope; verify it when present
	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		idToken, err := c.verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return nil, fmt.Errorf("[auth0 Exchange] ID token verification failed: %w", err)
		}
		if nonce != "" && idToken.Nonce != nonce {
			return nil, apperrors.ErrInvalidNonce
		}
	}

	userInfo, err := c.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("[auth0 Exchange] userinfo request failed: %w", err)
	}

	var claims identity.Claims
	if err := userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("[auth0 Exchange] failed to decode userinfo: %w", err)
	}

	id, err := identity.FromClaims(claims)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth0 Exchange]")
	}
	return id, nil
}

func (c *Client) LogoutURL(returnTo string) string {
	params := url.Values{}
	params.Set("returnTo", returnTo)
	params.Set("client_id", c.clientID)
	return c.baseURL + logoutPath + "?" + params.Encode()
}
