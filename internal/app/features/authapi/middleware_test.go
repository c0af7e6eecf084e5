package authapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/questboard/questboard/internal/app/features/authapi"
	"github.com/questboard/questboard/internal/app/system/auth"
	"github.com/questboard/questboard/internal/domain/models"
	"go.uber.org/zap"
)

type fakeSessions struct {
	sessions map[string]models.APISession
	rotated  []string
}

func (f *fakeSessions) Get(_ context.Context, token string) (models.APISession, bool, error) {
	s, ok := f.sessions[token]
	return s, ok, nil
}

func (f *fakeSessions) Rotate(_ context.Context, oldToken string, access models.TokenAccess) (models.APISession, error) {
	f.rotated = append(f.rotated, oldToken)
	delete(f.sessions, oldToken)
	s := models.APISession{
		Token:         access.AccessToken,
		Access:        access,
		LastRefreshed: time.Now().Unix(),
		Expires:       time.Now().Add(14 * 24 * time.Hour),
	}
	f.sessions[s.Token] = s
	return s, nil
}

type fakeRefresher struct {
	next models.TokenAccess
	err  error
}

func (f *fakeRefresher) Refresh(_ context.Context, _ models.TokenAccess) (models.TokenAccess, error) {
	return f.next, f.err
}

func liveSession(token string) models.APISession {
	return models.APISession{
		Token: token,
		Access: models.TokenAccess{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   604800,
		},
		LastRefreshed: time.Now().Unix(),
		Expires:       time.Now().Add(14 * 24 * time.Hour),
	}
}

func staleSession(token string) models.APISession {
	s := liveSession(token)
	s.LastRefreshed = time.Now().Add(-8 * 24 * time.Hour).Unix()
	s.Access.ExpiresIn = 60
	return s
}

// capture is a downstream handler recording the session it saw.
type capture struct {
	called bool
	sess   models.APISession
	found  bool
}

func (c *capture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.called = true
	c.sess, c.found = auth.SessionFromRequest(r)
	w.WriteHeader(http.StatusOK)
}

func newHandler(sessions *fakeSessions, refresher *fakeRefresher) *authapi.Handler {
	return authapi.NewHandler(sessions, refresher, nil, zap.NewNop())
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return body.Status
}

func TestRequireSession_NoHeaderIgnored(t *testing.T) {
	down := &capture{}
	h := newHandler(&fakeSessions{sessions: map[string]models.APISession{}}, &fakeRefresher{})

	rec := httptest.NewRecorder()
	h.RequireSession(down).ServeHTTP(rec, httptest.NewRequest("GET", "/auth-api/user", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if got := decodeStatus(t, rec); got != "ignore" {
		t.Errorf("status field: got %q, want %q", got, "ignore")
	}
	if down.called {
		t.Error("downstream must not run without a bearer token")
	}
}

func TestRequireSession_UnknownToken(t *testing.T) {
	down := &capture{}
	h := newHandler(&fakeSessions{sessions: map[string]models.APISession{}}, &fakeRefresher{})

	req := httptest.NewRequest("GET", "/auth-api/user", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	h.RequireSession(down).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if down.called {
		t.Error("downstream must not run for an unknown token")
	}
}

func TestRequireSession_ValidTokenInjectsSession(t *testing.T) {
	sessions := &fakeSessions{sessions: map[string]models.APISession{
		"tok-1": liveSession("tok-1"),
	}}
	down := &capture{}
	h := newHandler(sessions, &fakeRefresher{})

	req := httptest.NewRequest("GET", "/auth-api/user", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	h.RequireSession(down).ServeHTTP(rec, req)

	if !down.called || !down.found {
		t.Fatal("expected downstream to run with a session in context")
	}
	if down.sess.Token != "tok-1" {
		t.Errorf("session token: got %q", down.sess.Token)
	}
	if len(sessions.rotated) != 0 {
		t.Error("a live token must not be rotated")
	}
}

func TestRequireSession_ExpiredTokenRefreshesAndRotates(t *testing.T) {
	sessions := &fakeSessions{sessions: map[string]models.APISession{
		"old-tok": staleSession("old-tok"),
	}}
	refresher := &fakeRefresher{next: models.TokenAccess{
		AccessToken:  "new-tok",
		RefreshToken: "refresh-2",
		TokenType:    "Bearer",
		ExpiresIn:    604800,
	}}
	down := &capture{}
	h := newHandler(sessions, refresher)

	req := httptest.NewRequest("GET", "/auth-api/user", nil)
	req.Header.Set("Authorization", "Bearer old-tok")
	rec := httptest.NewRecorder()
	h.RequireSession(down).ServeHTTP(rec, req)

	if !down.called {
		t.Fatal("expected downstream to run after refresh")
	}
	if down.sess.Token != "new-tok" {
		t.Errorf("expected rotated session in context, got token %q", down.sess.Token)
	}
	if len(sessions.rotated) != 1 || sessions.rotated[0] != "old-tok" {
		t.Errorf("expected old session rotated, got %v", sessions.rotated)
	}
}

func TestRequireSession_RefreshFailure(t *testing.T) {
	sessions := &fakeSessions{sessions: map[string]models.APISession{
		"old-tok": staleSession("old-tok"),
	}}
	refresher := &fakeRefresher{err: errors.New("refresh grant rejected")}
	down := &capture{}
	h := newHandler(sessions, refresher)

	req := httptest.NewRequest("GET", "/auth-api/user", nil)
	req.Header.Set("Authorization", "Bearer old-tok")
	rec := httptest.NewRecorder()
	h.RequireSession(down).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if down.called {
		t.Error("downstream must not run when refresh fails")
	}
}
