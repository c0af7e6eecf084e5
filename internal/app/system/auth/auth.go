// internal/app/system/auth/auth.go

// Package auth carries per-request authentication state: the API
// session the bearer middleware resolved, and the browser cookie
// session holding the visitor's language preference.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/questboard/questboard/internal/domain/models"
	"go.uber.org/zap"
)

const (
	// langKey is the cookie-session key holding the language code.
	langKey = "lang"

	// DefaultLang is used when the visitor has no stored preference.
	DefaultLang = "en"
)

/*─────────────────────────────────────────────────────────────────────────────*
| API session in request context                                              |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentSessionKey ctxKey = "apiSession"

// WithSession returns a request whose context carries the resolved
// API session. Set by the bearer middleware.
func WithSession(r *http.Request, sess models.APISession) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentSessionKey, sess))
}

// SessionFromRequest returns the API session the middleware resolved,
// and a found flag.
func SessionFromRequest(r *http.Request) (models.APISession, bool) {
	sess, ok := r.Context().Value(currentSessionKey).(models.APISession)
	return sess, ok
}

/*─────────────────────────────────────────────────────────────────────────────*
| Language preference cookie session                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// CookieSessions wraps a gorilla cookie store scoped to one named
// session. It only carries the language preference today.
type CookieSessions struct {
	store *sessions.CookieStore
	name  string
}

// NewCookieSessions builds the signed cookie store.
//
// In production (secure=true) cookies are Secure + SameSite=None so
// they survive the cross-site OAuth redirect; over plain http in dev,
// Lax keeps them accepted.
func NewCookieSessions(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*CookieSessions, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("cookie session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &CookieSessions{store: store, name: name}, nil
}

// Lang returns the visitor's stored language preference.
func (c *CookieSessions) Lang(r *http.Request) string {
	sess, _ := c.store.Get(r, c.name)
	if v, ok := sess.Values[langKey].(string); ok && v != "" {
		return v
	}
	return DefaultLang
}

// SetLang stores the language preference on the response cookie.
func (c *CookieSessions) SetLang(w http.ResponseWriter, r *http.Request, lang string) error {
	sess, _ := c.store.Get(r, c.name)
	sess.Values[langKey] = lang
	return sess.Save(r, w)
}
