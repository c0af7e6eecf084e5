// internal/app/policy/guildpolicy/guildpolicy.go

// Package guildpolicy resolves what a guild member may do on the
// dashboard for one guild.
//
// Authorization rules:
//   - IsAdmin: the member holds the Manage Server permission, or the
//     guild config names a manager role the member holds (role names
//     compare case-insensitively, trimmed). With no manager role
//     configured, only Manage Server grants admin.
//   - Permission (may act as a normal user, e.g. post games): granted
//     to everyone when the config sets no required role; otherwise the
//     member must hold the required role.
//
// A configured posting password is a separate gate applied when a
// game is posted; IsAdmin never bypasses it.
package guildpolicy

import (
	"strings"

	"github.com/questboard/questboard/internal/app/system/snapshot"
	"github.com/questboard/questboard/internal/domain/models"
)

// Access is the resolved permission pair for one member on one guild.
type Access struct {
	Permission bool
	IsAdmin    bool
}

// Resolve computes Access from a member's live role set and the
// guild's stored configuration. Pure function of its inputs.
func Resolve(member snapshot.Member, cfg models.GuildConfig) Access {
	return Access{
		Permission: cfg.Role == "" || holdsRole(member, cfg.Role),
		IsAdmin:    member.CanManageGuild || (cfg.ManagerRole != "" && holdsRole(member, cfg.ManagerRole)),
	}
}

func holdsRole(member snapshot.Member, name string) bool {
	want := strings.TrimSpace(name)
	for _, r := range member.RoleNames {
		if strings.EqualFold(strings.TrimSpace(r), want) {
			return true
		}
	}
	return false
}
