// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/dalemusser/waffle/config"
	"github.com/questboard/questboard/internal/app/store/apisessions"
	"github.com/questboard/questboard/internal/app/store/games"
	"github.com/questboard/questboard/internal/app/store/guildconfigs"
	"github.com/questboard/questboard/internal/app/store/oauthstates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the Mongo connection and builds the Discord
// gateway session. The gateway socket itself is opened later, in
// Startup, so a bad bot token fails before the HTTP server binds but
// after the database is known good.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	session, err := discordgo.New("Bot " + appCfg.DiscordToken)
	if err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("discord session: %w", err)
	}
	// The snapshot needs guilds, channels, roles, and the member list.
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	session.StateEnabled = true

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		Discord:       session,
	}, nil
}

// EnsureSchema creates the collection indexes every store relies on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	ensure := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"guildConfig", guildconfigs.New(db).EnsureIndexes},
		{"games", games.New(db).EnsureIndexes},
		{"apiSessions", apisessions.New(db).EnsureIndexes},
		{"oauthStates", oauthstates.New(db).EnsureIndexes},
	}
	for _, e := range ensure {
		if err := e.fn(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", e.name, err)
		}
	}

	logger.Info("database indexes ensured")
	return nil
}
