// internal/app/features/guildconfig/handler.go

// Package guildconfig serves the admin-gated guild configuration save
// behind POST /auth-api/guild-config.
package guildconfig

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/questboard/questboard/internal/app/account"
	"github.com/questboard/questboard/internal/app/store/guildconfigs"
	"github.com/questboard/questboard/internal/app/system/auth"
	"github.com/questboard/questboard/internal/app/system/identity"
	"github.com/questboard/questboard/internal/app/system/timeouts"
	"github.com/questboard/questboard/internal/domain/models"
	"go.uber.org/zap"
)

// Handler saves guild configuration submitted from the dashboard.
type Handler struct {
	Configs  *guildconfigs.Store
	Account  *account.Assembler
	Log      *zap.Logger
	sanitize *bluemonday.Policy
}

// NewHandler creates a guildconfig Handler. Submitted strings pass
// through bluemonday's strict policy before persistence.
func NewHandler(configs *guildconfigs.Store, assembler *account.Assembler, logger *zap.Logger) *Handler {
	return &Handler{
		Configs:  configs,
		Account:  assembler,
		Log:      logger,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// payload is the dashboard's save request: the target guild plus a
// partial config.
type payload struct {
	Guild string `json:"guild"`
	models.GuildConfigPatch
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /auth-api/guild-config                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status": "error", "message": "invalid token",
		})
		return
	}

	var in payload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status": "error", "message": "malformed request body",
		})
		return
	}
	if in.Guild == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status": "error", "message": "missing guild",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.authorize(ctx, sess, in.Guild); err != nil {
		h.respondAuthError(w, err)
		return
	}

	h.scrub(&in.GuildConfigPatch)

	cfg, found, err := h.Configs.Get(ctx, in.Guild)
	if err != nil {
		h.Log.Error("guild config load failed", zap.Error(err), zap.String("guild", in.Guild))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error", "message": "config save failed",
		})
		return
	}
	if !found {
		cfg = models.DefaultGuildConfig(in.Guild)
	}

	merged := cfg.Merge(in.GuildConfigPatch)
	if _, err := h.Configs.Save(ctx, merged); err != nil {
		h.Log.Error("guild config save failed", zap.Error(err), zap.String("guild", in.Guild))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error", "message": "config save failed",
		})
		return
	}

	h.Log.Info("guild config saved", zap.String("guild", in.Guild))
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"token":  sess.Token,
		"config": merged,
	})
}

// authorize checks the requester administers the target guild.
func (h *Handler) authorize(ctx context.Context, sess models.APISession, guildID string) error {
	acct, err := h.Account.Fetch(ctx, sess.Access, account.Options{Guilds: true})
	if err != nil {
		return err
	}
	for _, g := range acct.Guilds {
		if g.ID != guildID {
			continue
		}
		if !g.IsAdmin {
			return account.ErrPermission
		}
		return nil
	}
	return account.ErrNotFound
}

func (h *Handler) respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status": "error", "message": "guild not found",
		})
	case errors.Is(err, account.ErrPermission):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"status": "error", "message": "not a guild admin",
		})
	default:
		var se *identity.StatusError
		if errors.As(err, &se) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"status": "error", "message": "invalid token",
			})
			return
		}
		h.Log.Error("guild authorization failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error", "message": "config save failed",
		})
	}
}

// scrub strips any markup from submitted strings in place.
func (h *Handler) scrub(p *models.GuildConfigPatch) {
	for i, c := range p.Channels {
		p.Channels[i] = h.sanitize.Sanitize(c)
	}
	clean := func(s **string) {
		if *s != nil {
			v := h.sanitize.Sanitize(**s)
			*s = &v
		}
	}
	clean(&p.Role)
	clean(&p.ManagerRole)
	clean(&p.Password)
	clean(&p.EmbedColor)
	clean(&p.Lang)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
