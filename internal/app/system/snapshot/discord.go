// internal/app/system/snapshot/discord.go
package snapshot

import (
	"github.com/bwmarrin/discordgo"
)

// StateSource adapts a discordgo gateway session's state cache to the
// Source interface. Reads take the state's read lock only long enough
// to copy the fields the dashboard needs.
type StateSource struct {
	session *discordgo.Session
}

// NewStateSource wraps a connected discordgo session.
func NewStateSource(s *discordgo.Session) *StateSource {
	return &StateSource{session: s}
}

// Ready reports whether the gateway has completed its initial sync.
func (ss *StateSource) Ready() bool {
	st := ss.session.State
	if st == nil {
		return false
	}
	st.RLock()
	defer st.RUnlock()
	return len(st.Guilds) > 0
}

// Guilds copies the current guild set out of the gateway state.
func (ss *StateSource) Guilds() []Guild {
	st := ss.session.State
	if st == nil {
		return nil
	}
	st.RLock()
	defer st.RUnlock()

	out := make([]Guild, 0, len(st.Guilds))
	for _, g := range st.Guilds {
		out = append(out, convertGuild(g))
	}
	return out
}

func convertGuild(g *discordgo.Guild) Guild {
	roleNames := make(map[string]string, len(g.Roles))
	rolePerms := make(map[string]int64, len(g.Roles))
	for _, r := range g.Roles {
		roleNames[r.ID] = r.Name
		rolePerms[r.ID] = r.Permissions
	}

	out := Guild{
		ID:      g.ID,
		Name:    g.Name,
		IconURL: g.IconURL("128"),
	}

	for _, c := range g.Channels {
		out.Channels = append(out.Channels, Channel{
			ID:   c.ID,
			Name: c.Name,
			Text: c.Type == discordgo.ChannelTypeGuildText,
		})
	}

	for _, m := range g.Members {
		if m.User == nil {
			continue
		}
		mem := Member{
			ID:             m.User.ID,
			Tag:            m.User.Username + "#" + m.User.Discriminator,
			CanManageGuild: m.User.ID == g.OwnerID,
		}
		// The @everyone role carries the guild id and applies to all
		// members without appearing in m.Roles.
		perms := rolePerms[g.ID]
		for _, rid := range m.Roles {
			if name, ok := roleNames[rid]; ok {
				mem.RoleNames = append(mem.RoleNames, name)
			}
			perms |= rolePerms[rid]
		}
		if perms&(discordgo.PermissionManageServer|discordgo.PermissionAdministrator) != 0 {
			mem.CanManageGuild = true
		}
		out.Members = append(out.Members, mem)
	}

	return out
}
