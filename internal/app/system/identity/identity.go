// internal/app/system/identity/identity.go

// Package identity resolves a Discord OAuth access token into the
// user account behind it via the /users/@me endpoint.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/questboard/questboard/internal/domain/models"
)

const (
	defaultBaseURL = "https://discord.com/api"
	avatarCDN      = "https://cdn.discordapp.com/avatars"
)

// Identity is the resolved account for a request's lifetime.
type Identity struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Tag           string `json:"tag"`
	AvatarURL     string `json:"avatarURL"`
}

// StatusError reports a non-200 answer from the identity provider.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("identity provider returned status %d", e.Code)
}

// Client fetches identities from Discord. The zero value is not
// usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates an identity client. baseURL overrides the Discord API
// root for tests; empty means production.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Fetch resolves the user behind an access token. The caller supplies
// the token type from the stored session ("Bearer" for OAuth logins).
// Any transport error or non-200 status propagates; no retries.
func (c *Client) Fetch(ctx context.Context, tokenType, accessToken string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/@me", nil)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Authorization", tokenType+" "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("identity fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, &StatusError{Code: resp.StatusCode}
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, fmt.Errorf("identity decode: %w", err)
	}

	id.Tag = id.Username + "#" + id.Discriminator
	id.AvatarURL = fmt.Sprintf("%s/%s/%s.png?size=128", avatarCDN, id.ID, id.Avatar)
	return id, nil
}

// FetchWithAccess is a convenience wrapper taking the stored token
// bundle.
func (c *Client) FetchWithAccess(ctx context.Context, access models.TokenAccess) (Identity, error) {
	return c.Fetch(ctx, access.TokenType, access.AccessToken)
}
