// internal/app/store/guildconfigs/store.go
package guildconfigs

import (
	"context"
	"time"

	"github.com/questboard/questboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages per-guild configuration records.
//
// The collection holds at most one record per guild (unique index);
// guilds with no record fall back to models.DefaultGuildConfig in
// memory and nothing is written until an admin saves.
type Store struct {
	c *mongo.Collection
}

// New creates a guild-config Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("guildConfig")}
}

// EnsureIndexes creates the unique per-guild index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "guild", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_guildconfig_guild"),
	})
	return err
}

// Get returns the stored config for one guild. found is false when no
// record exists; the caller decides whether to synthesize a default.
func (s *Store) Get(ctx context.Context, guildID string) (models.GuildConfig, bool, error) {
	var cfg models.GuildConfig
	err := s.c.FindOne(ctx, bson.M{"guild": guildID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return models.GuildConfig{}, false, nil
	}
	if err != nil {
		return models.GuildConfig{}, false, err
	}
	return cfg, true, nil
}

// GetByGuilds fetches the stored configs for a guild-id set in one
// batched query. Guilds without a record are simply absent from the
// result.
func (s *Store) GetByGuilds(ctx context.Context, guildIDs []string) ([]models.GuildConfig, error) {
	if len(guildIDs) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"guild": bson.M{"$in": guildIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GuildConfig
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save upserts a guild's config and returns the number of documents
// modified (1 for updates and inserts, 0 when nothing changed).
func (s *Store) Save(ctx context.Context, cfg models.GuildConfig) (int64, error) {
	update := bson.M{
		"$set": bson.M{
			"guild":       cfg.Guild,
			"channels":    cfg.Channels,
			"role":        cfg.Role,
			"managerRole": cfg.ManagerRole,
			"password":    cfg.Password,
			"hidden":      cfg.Hidden,
			"pruning":     cfg.Pruning,
			"embeds":      cfg.Embeds,
			"embedColor":  cfg.EmbedColor,
			"lang":        cfg.Lang,
			"updated_at":  time.Now().UTC(),
		},
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"guild": cfg.Guild}, update, options.Update().SetUpsert(true))
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount + res.UpsertedCount, nil
}
