// internal/app/store/games/store.go
package games

import (
	"context"
	"regexp"

	"github.com/questboard/questboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages persisted game records.
type Store struct {
	c *mongo.Collection
}

// New creates a games Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("games")}
}

// EnsureIndexes creates the query indexes the dashboard relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "s", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("idx_games_guild_time"),
		},
		{
			Keys:    bson.D{{Key: "dm", Value: 1}},
			Options: options.Index().SetName("idx_games_dm"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Query describes one dashboard game lookup. Guilds always scopes the
// result; the remaining fields narrow it per page.
type Query struct {
	// Guilds is the guild-id set the viewer belongs to.
	Guilds []string
	// MineTag, when set, restricts to games the tag runs (dm) or has
	// signed up for (reserved roster match).
	MineTag string
	// After, when non-zero, restricts to games starting after this
	// epoch-millisecond instant.
	After int64
	// ExcludeDM, when set, drops games this tag is the DM of.
	ExcludeDM string
}

// Get returns one game by id.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (models.Game, bool, error) {
	var g models.Game
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return models.Game{}, false, nil
	}
	if err != nil {
		return models.Game{}, false, err
	}
	return g, true, nil
}

// Find runs a dashboard query.
//
// The reserved-roster match is a substring search over free-form
// text, so the tag is regex-escaped before use as a pattern; user
// tags routinely contain metacharacters ("]" and friends).
func (s *Store) Find(ctx context.Context, q Query) ([]models.Game, error) {
	if len(q.Guilds) == 0 {
		return nil, nil
	}

	filter := bson.M{"s": bson.M{"$in": q.Guilds}}
	if q.MineTag != "" {
		filter["$or"] = bson.A{
			bson.M{"dm": q.MineTag},
			bson.M{"reserved": primitive.Regex{Pattern: regexp.QuoteMeta(q.MineTag)}},
		}
	}
	if q.After > 0 {
		filter["timestamp"] = bson.M{"$gt": q.After}
	}
	if q.ExcludeDM != "" {
		filter["dm"] = bson.M{"$ne": q.ExcludeDM}
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Game
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save upserts a game and reports whether anything was written.
func (s *Store) Save(ctx context.Context, g models.Game) (primitive.ObjectID, bool, error) {
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
		_, err := s.c.InsertOne(ctx, g)
		if err != nil {
			return primitive.NilObjectID, false, err
		}
		return g.ID, true, nil
	}
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	return g.ID, res.ModifiedCount > 0, nil
}
