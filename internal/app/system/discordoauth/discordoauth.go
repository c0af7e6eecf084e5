// internal/app/system/discordoauth/discordoauth.go

// Package discordoauth wraps the Discord OAuth2 flows the dashboard
// uses: the authorize-URL + code-exchange pair behind /api/login, and
// the refresh-token grant the bearer middleware runs when a stored
// access token has aged out.
package discordoauth

import (
	"context"
	"fmt"
	"time"

	"github.com/questboard/questboard/internal/domain/models"
	"golang.org/x/oauth2"
)

// Endpoint is Discord's OAuth2 endpoint pair. Discord expects client
// credentials in the POST body, not basic auth.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/api/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// Scopes the dashboard requests: identity plus the guild list.
var Scopes = []string{"identify", "guilds"}

// Exchanger performs code exchange and token refresh against Discord.
type Exchanger struct {
	conf *oauth2.Config
}

// New creates an Exchanger for the given OAuth application.
func New(clientID, clientSecret, redirectURL string) *Exchanger {
	return &Exchanger{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
			Endpoint:     Endpoint,
		},
	}
}

// NewWithEndpoint is New with the endpoint pair overridden. Tests
// point it at an httptest server.
func NewWithEndpoint(clientID, clientSecret, redirectURL string, ep oauth2.Endpoint) *Exchanger {
	e := New(clientID, clientSecret, redirectURL)
	e.conf.Endpoint = ep
	return e
}

// Configured reports whether OAuth credentials are present.
func (e *Exchanger) Configured() bool {
	return e.conf.ClientID != "" && e.conf.ClientSecret != ""
}

// AuthCodeURL builds the Discord consent-screen URL carrying the CSRF
// state token.
func (e *Exchanger) AuthCodeURL(state string) string {
	return e.conf.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token bundle.
func (e *Exchanger) Exchange(ctx context.Context, code string) (models.TokenAccess, error) {
	tok, err := e.conf.Exchange(ctx, code)
	if err != nil {
		return models.TokenAccess{}, fmt.Errorf("oauth code exchange: %w", err)
	}
	return toAccess(tok), nil
}

// Refresh runs the refresh-token grant for an aged access token.
// Discord may or may not issue a new refresh token; when it does not,
// the old one is carried forward.
func (e *Exchanger) Refresh(ctx context.Context, access models.TokenAccess) (models.TokenAccess, error) {
	if access.RefreshToken == "" {
		return models.TokenAccess{}, fmt.Errorf("oauth refresh: no refresh token stored")
	}

	// A token source seeded with only the refresh token always
	// refreshes on first use.
	src := e.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: access.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return models.TokenAccess{}, fmt.Errorf("oauth refresh: %w", err)
	}

	out := toAccess(tok)
	if out.RefreshToken == "" {
		out.RefreshToken = access.RefreshToken
	}
	return out, nil
}

func toAccess(tok *oauth2.Token) models.TokenAccess {
	access := models.TokenAccess{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if access.TokenType == "" {
		access.TokenType = "Bearer"
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		access.Scope = scope
	}
	if !tok.Expiry.IsZero() {
		access.ExpiresIn = int(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	return access
}
