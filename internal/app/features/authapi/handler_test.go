package authapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questboard/questboard/internal/app/account"
	"github.com/questboard/questboard/internal/app/features/authapi"
	"github.com/questboard/questboard/internal/app/store/games"
	"github.com/questboard/questboard/internal/app/system/identity"
	"github.com/questboard/questboard/internal/app/system/snapshot"
	"github.com/questboard/questboard/internal/domain/models"
	"github.com/questboard/questboard/internal/testutil"
	"go.uber.org/zap"
)

type stubConfigs struct{}

func (stubConfigs) GetByGuilds(context.Context, []string) ([]models.GuildConfig, error) {
	return nil, nil
}

type stubGames struct{}

func (stubGames) Find(context.Context, games.Query) ([]models.Game, error) { return nil, nil }

type stubIdentity struct{ id identity.Identity }

func (s stubIdentity) FetchWithAccess(context.Context, models.TokenAccess) (identity.Identity, error) {
	return s.id, nil
}

func testAssembler() *account.Assembler {
	return &account.Assembler{
		Snapshot: &testutil.SnapshotSource{},
		Configs:  stubConfigs{},
		Games:    stubGames{},
		Identity: stubIdentity{id: identity.Identity{ID: "100", Username: "alice", Discriminator: "0001", Tag: "alice#0001"}},
		Log:      zap.NewNop(),
	}
}

func TestServeUser(t *testing.T) {
	h := authapi.NewHandler(&fakeSessions{}, &fakeRefresher{}, testAssembler(), zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/auth-api/user", testutil.Session("tok-1"))
	rec := httptest.NewRecorder()
	h.ServeUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Status  string `json:"status"`
		Token   string `json:"token"`
		Account struct {
			User identity.Identity `json:"user"`
		} `json:"account"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Status != "success" || body.Token != "tok-1" {
		t.Errorf("envelope: got status=%q token=%q", body.Status, body.Token)
	}
	if body.Account.User.Tag != "alice#0001" {
		t.Errorf("user tag: got %q", body.Account.User.Tag)
	}
}

func TestServeUser_NoSessionInContext(t *testing.T) {
	h := authapi.NewHandler(&fakeSessions{}, &fakeRefresher{}, testAssembler(), zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeUser(rec, httptest.NewRequest("GET", "/auth-api/user", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestServeGuilds(t *testing.T) {
	a := testAssembler()
	a.Snapshot = &testutil.SnapshotSource{Fixed: []snapshot.Guild{
		testutil.Guild("g1", "One", testutil.Member("100", "alice#0001")),
	}}
	h := authapi.NewHandler(&fakeSessions{}, &fakeRefresher{}, a, zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/auth-api/guilds?page=upcoming&games=true", testutil.Session("tok-1"))
	rec := httptest.NewRecorder()
	h.ServeGuilds(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Status  string `json:"status"`
		Account struct {
			Guilds []json.RawMessage `json:"guilds"`
		} `json:"account"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Status != "success" {
		t.Errorf("status: got %q", body.Status)
	}
	if len(body.Account.Guilds) != 1 {
		t.Errorf("guilds: got %d, want 1", len(body.Account.Guilds))
	}
}
