// internal/app/features/authapi/middleware.go
package authapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/questboard/questboard/internal/app/system/auth"
	"github.com/questboard/questboard/internal/app/system/timeouts"
	"github.com/questboard/questboard/internal/domain/models"
	"go.uber.org/zap"
)

// RequireSession resolves the Authorization bearer token into a stored
// login session and injects it into the request context.
//
// A request with no Authorization header gets {"status":"ignore"} so
// the dashboard's anonymous polling stays quiet. An unknown token is a
// hard 401. When the Discord access token behind the session has aged
// out, the middleware refreshes it and rotates the stored session to
// the new token; the handlers echo the current token back so the
// browser can pick up the rotation.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeJSON(w, http.StatusOK, map[string]any{"status": "ignore"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"status": "error", "message": "invalid token",
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
		defer cancel()

		sess, found, err := h.Sessions.Get(ctx, token)
		if err != nil {
			h.Log.Error("session lookup failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"status": "error", "message": "session lookup failed",
			})
			return
		}
		if !found {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"status": "error", "message": "invalid token",
			})
			return
		}

		if accessExpired(sess, time.Now()) {
			sess, err = h.refreshSession(ctx, sess)
			if err != nil {
				h.Log.Warn("token refresh failed", zap.Error(err))
				writeJSON(w, http.StatusUnauthorized, map[string]any{
					"status": "error", "message": "token refresh failed",
				})
				return
			}
		}

		next.ServeHTTP(w, auth.WithSession(r, sess))
	})
}

// accessExpired reports whether the Discord access token behind a
// session has outlived its expires_in window.
func accessExpired(sess models.APISession, now time.Time) bool {
	if sess.Access.ExpiresIn <= 0 {
		return false
	}
	return sess.LastRefreshed+int64(sess.Access.ExpiresIn) <= now.Unix()
}

// refreshSession runs the refresh grant and rotates the stored session
// when Discord issued a different access token.
func (h *Handler) refreshSession(ctx context.Context, sess models.APISession) (models.APISession, error) {
	access, err := h.OAuth.Refresh(ctx, sess.Access)
	if err != nil {
		return models.APISession{}, err
	}
	rotated, err := h.Sessions.Rotate(ctx, sess.Token, access)
	if err != nil {
		return models.APISession{}, err
	}
	h.Log.Info("rotated login session after token refresh")
	return rotated, nil
}
