// internal/app/bootstrap/config.go
package bootstrap

import (
	"encoding/hex"
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Questboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, discord_token, etc.
//   - Environment variables: QUESTBOARD_MONGO_URI, QUESTBOARD_DISCORD_TOKEN, etc.
//   - Command-line flags: --mongo_uri, --discord_token, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "questboard", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "", Desc: "Cookie signing key (random dev key generated when blank)"},
	{Name: "session_name", Default: "questboard-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Discord credentials
	{Name: "discord_token", Default: "", Desc: "Discord bot token for the gateway connection"},
	{Name: "discord_client_id", Default: "", Desc: "Discord OAuth2 application client ID"},
	{Name: "discord_client_secret", Default: "", Desc: "Discord OAuth2 application client secret"},
	{Name: "discord_redirect_url", Default: "", Desc: "OAuth2 callback URL (default: base_url + /api/login)"},

	{Name: "owner_tag", Default: "", Desc: "Bot owner Discord tag (user#discriminator); sees hidden guilds"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Base URL of the dashboard"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, QUESTBOARD_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "QUESTBOARD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		DiscordToken:        appValues.String("discord_token"),
		DiscordClientID:     appValues.String("discord_client_id"),
		DiscordClientSecret: appValues.String("discord_client_secret"),
		DiscordRedirectURL:  appValues.String("discord_redirect_url"),

		OwnerTag: appValues.String("owner_tag"),

		BaseURL: appValues.String("base_url"),
	}

	if appCfg.DiscordRedirectURL == "" {
		appCfg.DiscordRedirectURL = appCfg.BaseURL + "/api/login"
	}

	// A blank session key gets a random per-process key: fine for dev,
	// but logins lose their lang cookie on every restart.
	if appCfg.SessionKey == "" {
		appCfg.SessionKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
		logger.Warn("session_key not set; generated a random per-process key")
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Questboard validates the MongoDB URI format and requires the Discord
// credentials, catching configuration errors before connecting.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.DiscordToken == "" {
		return fmt.Errorf("discord_token is required")
	}
	if appCfg.DiscordClientID == "" || appCfg.DiscordClientSecret == "" {
		return fmt.Errorf("discord_client_id and discord_client_secret are required")
	}

	return nil
}
