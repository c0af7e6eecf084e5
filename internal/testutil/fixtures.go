package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/questboard/questboard/internal/app/system/snapshot"
	"github.com/questboard/questboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Snapshot fixtures                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// SnapshotSource is a fixed in-memory snapshot for aggregation tests.
type SnapshotSource struct {
	Fixed []snapshot.Guild
}

// Guilds returns the fixed guild set.
func (s *SnapshotSource) Guilds() []snapshot.Guild { return s.Fixed }

// Guild builds a snapshot guild with one text channel named "general".
func Guild(id, name string, members ...snapshot.Member) snapshot.Guild {
	return snapshot.Guild{
		ID:   id,
		Name: name,
		Channels: []snapshot.Channel{
			{ID: id + "-general", Name: "general", Text: true},
		},
		Members: members,
	}
}

// Member builds a snapshot member carrying the given role names.
func Member(id, tag string, roles ...string) snapshot.Member {
	return snapshot.Member{ID: id, Tag: tag, RoleNames: roles}
}

// AdminMember builds a member with the manage-guild permission.
func AdminMember(id, tag string) snapshot.Member {
	return snapshot.Member{ID: id, Tag: tag, CanManageGuild: true}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Mongo fixtures                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateGuildConfig inserts a stored config for the given guild.
func (f *Fixtures) CreateGuildConfig(ctx context.Context, guildID string, mutate func(*models.GuildConfig)) models.GuildConfig {
	f.t.Helper()

	cfg := models.DefaultGuildConfig(guildID)
	cfg.ID = primitive.NewObjectID()
	if mutate != nil {
		mutate(&cfg)
	}

	_, err := f.db.Collection("guildConfig").InsertOne(ctx, cfg)
	if err != nil {
		f.t.Fatalf("failed to create test guild config: %v", err)
	}
	return cfg
}

// CreateGame inserts a scheduled game for the given guild.
func (f *Fixtures) CreateGame(ctx context.Context, guildID, dm string, ts int64, mutate func(*models.Game)) models.Game {
	f.t.Helper()

	g := models.Game{
		ID:        primitive.NewObjectID(),
		S:         guildID,
		C:         guildID + "-general",
		Adventure: "Test Adventure",
		DM:        dm,
		Date:      "2021-03-04",
		Time:      "19:00",
		Timezone:  0,
		Players:   5,
		Timestamp: ts,
	}
	if mutate != nil {
		mutate(&g)
	}

	_, err := f.db.Collection("games").InsertOne(ctx, g)
	if err != nil {
		f.t.Fatalf("failed to create test game: %v", err)
	}
	return g
}

// CreateAPISession inserts a login session for the given token bundle.
func (f *Fixtures) CreateAPISession(ctx context.Context, access models.TokenAccess) models.APISession {
	f.t.Helper()

	now := time.Now().UTC()
	sess := models.APISession{
		ID:            primitive.NewObjectID(),
		Token:         access.AccessToken,
		Access:        access,
		LastRefreshed: now.Unix(),
		Expires:       now.Add(14 * 24 * time.Hour),
	}

	_, err := f.db.Collection("apiSessions").InsertOne(ctx, sess)
	if err != nil {
		f.t.Fatalf("failed to create test api session: %v", err)
	}
	return sess
}
