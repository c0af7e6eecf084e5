package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/questboard/questboard/internal/app/system/auth"
	"github.com/questboard/questboard/internal/domain/models"
)

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request carrying an API
// session in context, bypassing the bearer middleware.
func NewAuthenticatedRequest(method, target string, sess models.APISession) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return auth.WithSession(req, sess)
}

// Session builds an in-memory API session for handler tests.
func Session(token string) models.APISession {
	return models.APISession{
		Token: token,
		Access: models.TokenAccess{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   604800,
		},
	}
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 || findSubstring(s, substr))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
