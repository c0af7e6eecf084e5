// internal/app/system/snapshot/snapshot.go

// Package snapshot exposes the bot gateway's in-memory view of
// connected guilds as a read-only Source. The gateway mutates its
// state continuously; a Source call returns a best-effort
// point-in-time copy, so aggregation code can iterate it without
// holding any gateway locks.
package snapshot

// Channel is a guild channel as known to the gateway.
type Channel struct {
	ID   string
	Name string
	Text bool // true for text channels; only these can carry announcements
}

// Member is a guild member with resolved role names.
//
// RoleNames are the display names of the member's roles (not ids);
// guild configuration references roles by name. CanManageGuild is the
// Manage Server permission, computed from the member's roles and
// guild ownership.
type Member struct {
	ID             string
	Tag            string // username#discriminator
	RoleNames      []string
	CanManageGuild bool
}

// Guild is one connected guild.
type Guild struct {
	ID       string
	Name     string
	IconURL  string
	Channels []Channel
	Members  []Member
}

// Source enumerates the guilds the bot is currently connected to, in
// the gateway's natural order.
type Source interface {
	Guilds() []Guild
}

// MemberByID returns the guild member with the given user id.
func (g Guild) MemberByID(id string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// ChannelByID returns the guild channel with the given id.
func (g Guild) ChannelByID(id string) (Channel, bool) {
	for _, c := range g.Channels {
		if c.ID == id {
			return c, true
		}
	}
	return Channel{}, false
}

// TextChannels returns the guild's text channels in enumeration order.
func (g Guild) TextChannels() []Channel {
	var out []Channel
	for _, c := range g.Channels {
		if c.Text {
			out = append(out, c)
		}
	}
	return out
}
