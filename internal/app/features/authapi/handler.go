// internal/app/features/authapi/handler.go

// Package authapi serves the authenticated dashboard API: it resolves
// the bearer token into a stored login session (refreshing the Discord
// access token when it has aged out) and answers the /auth-api/user
// and /auth-api/guilds resolutions.
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/questboard/questboard/internal/app/account"
	"github.com/questboard/questboard/internal/app/system/auth"
	"github.com/questboard/questboard/internal/app/system/identity"
	"github.com/questboard/questboard/internal/app/system/timeouts"
	"github.com/questboard/questboard/internal/domain/models"
	"go.uber.org/zap"
)

// SessionStore is the slice of the apisessions store the middleware
// needs.
type SessionStore interface {
	Get(ctx context.Context, token string) (models.APISession, bool, error)
	Rotate(ctx context.Context, oldToken string, access models.TokenAccess) (models.APISession, error)
}

// Refresher runs the OAuth refresh-token grant.
type Refresher interface {
	Refresh(ctx context.Context, access models.TokenAccess) (models.TokenAccess, error)
}

// Handler serves the authenticated API.
type Handler struct {
	Sessions SessionStore
	OAuth    Refresher
	Account  *account.Assembler
	Log      *zap.Logger
}

// NewHandler creates an authapi Handler.
func NewHandler(sessions SessionStore, oauth Refresher, assembler *account.Assembler, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions: sessions,
		OAuth:    oauth,
		Account:  assembler,
		Log:      logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth-api/user                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status": "error", "message": "invalid token",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acct, err := h.Account.Fetch(ctx, sess.Access, account.Options{})
	if err != nil {
		h.respondFetchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"token":   sess.Token,
		"account": acct,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth-api/guilds?games=&page=                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGuilds(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status": "error", "message": "invalid token",
		})
		return
	}

	opts := account.Options{
		Guilds: true,
		Games:  r.URL.Query().Get("games") == "true",
		Page:   account.ParsePage(r.URL.Query().Get("page")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acct, err := h.Account.Fetch(ctx, sess.Access, opts)
	if err != nil {
		h.respondFetchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"token":   sess.Token,
		"account": acct,
	})
}

// respondFetchError maps account-resolution failures onto the JSON
// envelope. An upstream 401 means the stored token is no longer good.
func (h *Handler) respondFetchError(w http.ResponseWriter, err error) {
	var se *identity.StatusError
	if errors.As(err, &se) {
		h.Log.Warn("identity rejected stored token", zap.Int("code", se.Code))
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status": "error", "message": "invalid token",
		})
		return
	}
	h.Log.Error("account fetch failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"status": "error", "message": "account fetch failed",
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
