// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns the login subrouter; mounted under /api.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/login", h.ServeLogin)
	r.Get("/login/url", h.ServeLoginURL)
	r.Get("/lang/{lang}", h.ServeLang)
	return r
}
