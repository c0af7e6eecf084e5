// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is everything specific to the dashboard: the Mongo
// connection, the Discord bot and OAuth application credentials, and
// the owner override.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Cookie session configuration (language preference)
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: questboard-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Discord bot gateway
	DiscordToken string // Bot token for the gateway connection

	// Discord OAuth application (dashboard login)
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string // OAuth callback; derived from BaseURL when blank

	// OwnerTag is the bot owner's Discord tag (user#discriminator).
	// The owner sees hidden guilds and every page.
	OwnerTag string

	// Base URL of the dashboard (e.g., "https://questboard.example.com")
	BaseURL string
}
