// internal/app/account/aggregate.go
package account

import (
	"context"
	"fmt"

	"github.com/questboard/questboard/internal/app/policy/guildpolicy"
	"github.com/questboard/questboard/internal/app/system/identity"
	"github.com/questboard/questboard/internal/app/system/snapshot"
	"github.com/questboard/questboard/internal/domain/models"
)

// aggregateGuilds joins the gateway snapshot with stored configs for
// every guild the user is a live member of.
//
// Guilds the user is not a member of are silently omitted, as are
// hidden guilds (unless the viewer is the bot owner). A guild with no
// resolvable channels is still included; posting elsewhere enforces
// the channel requirement.
func (a *Assembler) aggregateGuilds(ctx context.Context, user identity.Identity, page Page) ([]*GuildView, error) {
	isOwner := a.OwnerTag != "" && user.Tag == a.OwnerTag

	var views []*GuildView
	var ids []string
	for _, g := range a.Snapshot.Guilds() {
		member, ok := g.MemberByID(user.ID)
		if !ok {
			continue
		}
		views = append(views, &GuildView{
			ID:       g.ID,
			Name:     g.Name,
			IconURL:  g.IconURL,
			Member:   member,
			Channels: g.Channels,
			Config:   models.DefaultGuildConfig(g.ID),
			Games:    []GameView{},
		})
		ids = append(ids, g.ID)
	}

	configs, err := a.Configs.GetByGuilds(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch guild configs: %w", err)
	}
	byGuild := make(map[string]models.GuildConfig, len(configs))
	for _, cfg := range configs {
		byGuild[cfg.Guild] = cfg
	}

	out := make([]*GuildView, 0, len(views))
	for _, v := range views {
		if cfg, ok := byGuild[v.ID]; ok {
			v.Config = cfg
		}
		if v.Config.Hidden && !isOwner {
			continue
		}
		v.AnnouncementChannels = announcementChannels(v.Config, v.Channels)

		access := guildpolicy.Resolve(v.Member, v.Config)
		v.Permission = access.Permission
		v.IsAdmin = access.IsAdmin

		if page.AdminOnly() && !v.IsAdmin && !isOwner {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// announcementChannels intersects the configured channel ids with the
// guild's existing text channels, preserving configured order. When
// none survive, the guild's first text channel is the fallback.
func announcementChannels(cfg models.GuildConfig, channels []snapshot.Channel) []snapshot.Channel {
	existing := make(map[string]snapshot.Channel, len(channels))
	var firstText *snapshot.Channel
	for i, c := range channels {
		if !c.Text {
			continue
		}
		existing[c.ID] = c
		if firstText == nil {
			firstText = &channels[i]
		}
	}

	var out []snapshot.Channel
	for _, id := range cfg.Channels {
		if c, ok := existing[id]; ok {
			out = append(out, c)
		}
	}
	if len(out) == 0 && firstText != nil {
		out = append(out, *firstText)
	}
	return out
}
