package identity_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questboard/questboard/internal/app/system/identity"
)

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/@me" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization: got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42","username":"alice","discriminator":"0001","avatar":"abc"}`))
	}))
	defer srv.Close()

	c := identity.New(srv.URL, srv.Client())
	id, err := c.Fetch(context.Background(), "Bearer", "tok-123")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if id.Tag != "alice#0001" {
		t.Errorf("Tag: got %q", id.Tag)
	}
	if id.AvatarURL != "https://cdn.discordapp.com/avatars/42/abc.png?size=128" {
		t.Errorf("AvatarURL: got %q", id.AvatarURL)
	}
}

func TestFetch_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := identity.New(srv.URL, srv.Client())
	_, err := c.Fetch(context.Background(), "Bearer", "bad")
	if err == nil {
		t.Fatal("expected error for 401")
	}

	var se *identity.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if se.Code != http.StatusUnauthorized {
		t.Errorf("Code: got %d", se.Code)
	}
}

func TestFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := identity.New(srv.URL, nil)
	if _, err := c.Fetch(context.Background(), "Bearer", "tok"); err == nil {
		t.Fatal("expected transport error")
	}
}
