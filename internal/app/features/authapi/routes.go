// internal/app/features/authapi/routes.go
package authapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the authenticated subrouter; mounted under /auth-api.
// The guild-config save handler is passed in so it runs behind the
// same bearer middleware.
func Routes(h *Handler, saveGuildConfig http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Use(h.RequireSession)
	r.Get("/user", h.ServeUser)
	r.Get("/guilds", h.ServeGuilds)
	r.Post("/guild-config", saveGuildConfig)
	return r
}
