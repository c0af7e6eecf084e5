// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/questboard/questboard/internal/app/account"
	"github.com/questboard/questboard/internal/app/store/apisessions"
	"github.com/questboard/questboard/internal/app/store/oauthstates"
	"github.com/questboard/questboard/internal/app/system/auth"
	"github.com/questboard/questboard/internal/app/system/discordoauth"
	"github.com/questboard/questboard/internal/app/system/identity"
	"github.com/questboard/questboard/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// stateLifetime bounds how long a login attempt can sit on Discord's
// consent screen before the state token expires.
const stateLifetime = 10 * time.Minute

// defaultRedirect is where the dashboard lands after a login that
// carried no return URL.
const defaultRedirect = "/games/upcoming"

// Handler runs the Discord OAuth login flow for the dashboard.
type Handler struct {
	Sessions *apisessions.Store
	States   *oauthstates.Store
	OAuth    *discordoauth.Exchanger
	Account  *account.Assembler
	Cookies  *auth.CookieSessions
	Log      *zap.Logger
}

// NewHandler creates a login Handler.
func NewHandler(
	sessions *apisessions.Store,
	states *oauthstates.Store,
	oauth *discordoauth.Exchanger,
	assembler *account.Assembler,
	cookies *auth.CookieSessions,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Sessions: sessions,
		States:   states,
		OAuth:    oauth,
		Account:  assembler,
		Cookies:  cookies,
		Log:      logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/login/url                                                           |
| Issues the Discord consent-screen URL with a one-time state token.           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLoginURL(w http.ResponseWriter, r *http.Request) {
	if !h.OAuth.Configured() {
		h.Log.Warn("discord oauth not configured")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "error", "message": "login is not configured",
		})
		return
	}

	state := uuid.NewString()
	returnURL := r.URL.Query().Get("redirect")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.States.Save(ctx, state, returnURL, time.Now().UTC().Add(stateLifetime)); err != nil {
		h.Log.Error("failed to save oauth state", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error", "message": "login is temporarily unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"url":    h.OAuth.AuthCodeURL(state),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/login?code=&state=                                                  |
| Exchanges the authorization code, persists the session, and returns          |
| the bearer token with the first account resolution.                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status": "error", "message": "missing code",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	state := r.URL.Query().Get("state")
	returnURL, valid, err := h.States.Validate(ctx, state)
	if err != nil {
		h.Log.Error("failed to validate oauth state", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error", "message": "login failed",
		})
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired oauth state")
		writeJSON(w, http.StatusForbidden, map[string]any{
			"status": "error", "message": "invalid state",
		})
		return
	}

	access, err := h.OAuth.Exchange(ctx, code)
	if err != nil {
		h.Log.Warn("oauth code exchange failed", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status": "error", "message": "authorization failed",
		})
		return
	}

	acct, err := h.Account.Fetch(ctx, access, account.Options{Guilds: true})
	if err != nil {
		var se *identity.StatusError
		if errors.As(err, &se) {
			h.Log.Warn("identity rejected fresh token", zap.Int("code", se.Code))
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"status": "error", "message": "authorization failed",
			})
			return
		}
		h.Log.Error("account fetch failed after login", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error", "message": "login failed",
		})
		return
	}

	sess, err := h.Sessions.Create(ctx, access)
	if err != nil {
		h.Log.Error("failed to persist login session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error", "message": "login failed",
		})
		return
	}

	redirect := returnURL
	if redirect == "" {
		redirect = defaultRedirect
	}

	h.Log.Info("dashboard login",
		zap.String("user", acct.User.Tag),
		zap.Int("guilds", len(acct.Guilds)))

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"token":    sess.Token,
		"account":  acct,
		"redirect": redirect,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/lang/{lang}                                                         |
| Stores the visitor's language preference on the cookie session.              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLang(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if lang == "" {
		lang = auth.DefaultLang
	}
	if err := h.Cookies.SetLang(w, r, lang); err != nil {
		h.Log.Error("failed to store language preference", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error", "message": "could not store language",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"lang":   lang,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
