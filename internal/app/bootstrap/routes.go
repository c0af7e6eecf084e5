// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/questboard/questboard/internal/app/account"
	authapifeature "github.com/questboard/questboard/internal/app/features/authapi"
	guildconfigfeature "github.com/questboard/questboard/internal/app/features/guildconfig"
	healthfeature "github.com/questboard/questboard/internal/app/features/health"
	loginfeature "github.com/questboard/questboard/internal/app/features/login"
	"github.com/questboard/questboard/internal/app/store/apisessions"
	"github.com/questboard/questboard/internal/app/store/games"
	"github.com/questboard/questboard/internal/app/store/guildconfigs"
	"github.com/questboard/questboard/internal/app/store/oauthstates"
	"github.com/questboard/questboard/internal/app/system/auth"
	"github.com/questboard/questboard/internal/app/system/discordoauth"
	"github.com/questboard/questboard/internal/app/system/identity"
	"github.com/questboard/questboard/internal/app/system/snapshot"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Questboard wires the stores, the
// gateway snapshot, and the account assembler, then mounts the three
// route groups: /health, /api (login flow), and /auth-api (bearer API).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	cookies, err := auth.NewCookieSessions(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("cookie session init failed", zap.Error(err))
		return nil, err
	}

	configStore := guildconfigs.New(deps.MongoDatabase)
	gameStore := games.New(deps.MongoDatabase)
	sessionStore := apisessions.New(deps.MongoDatabase)
	stateStore := oauthstates.New(deps.MongoDatabase)

	gateway := snapshot.NewStateSource(deps.Discord)
	oauth := discordoauth.New(appCfg.DiscordClientID, appCfg.DiscordClientSecret, appCfg.DiscordRedirectURL)

	assembler := &account.Assembler{
		Snapshot: gateway,
		Configs:  configStore,
		Games:    gameStore,
		Identity: identity.New("", nil),
		OwnerTag: appCfg.OwnerTag,
		Log:      logger,
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, gateway, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// OAuth login flow and language preference
	loginHandler := loginfeature.NewHandler(sessionStore, stateStore, oauth, assembler, cookies, logger)
	r.Mount("/api", loginfeature.Routes(loginHandler))

	// Authenticated dashboard API
	guildConfigHandler := guildconfigfeature.NewHandler(configStore, assembler, logger)
	authHandler := authapifeature.NewHandler(sessionStore, oauth, assembler, logger)
	r.Mount("/auth-api", authapifeature.Routes(authHandler, guildConfigHandler.ServeSave))

	return r, nil
}
