// internal/domain/models/guildconfig.go
package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuildConfig is the per-guild dashboard/bot configuration.
//
// At most one record exists per guild id (unique index on "guild").
// When no record exists, callers work with DefaultGuildConfig — an
// in-memory record that is never persisted until an admin saves it.
//
// Channels holds announcement channel ids in the order the admin
// configured them; entries may reference channels that no longer
// exist and are filtered at read time against the live snapshot.
type GuildConfig struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Guild       string             `bson:"guild" json:"guild"`
	Channels    []string           `bson:"channels" json:"channels"`
	Role        string             `bson:"role,omitempty" json:"role"`
	ManagerRole string             `bson:"managerRole,omitempty" json:"managerRole"`
	Password    string             `bson:"password,omitempty" json:"password"`
	Hidden      bool               `bson:"hidden" json:"hidden"`
	Pruning     bool               `bson:"pruning" json:"pruning"`
	Embeds      bool               `bson:"embeds" json:"embeds"`
	EmbedColor  string             `bson:"embedColor,omitempty" json:"embedColor"`
	Lang        string             `bson:"lang" json:"lang"`
}

// DefaultGuildConfig returns the ephemeral config used for guilds
// that have no stored record.
func DefaultGuildConfig(guildID string) GuildConfig {
	return GuildConfig{
		Guild:  guildID,
		Embeds: true,
		Lang:   "en",
	}
}

// Merge applies the non-zero fields of in on top of c and returns the
// result. Precedence: incoming explicit values > stored values >
// defaults. Bool fields are carried from in unconditionally because a
// form that omits a checkbox means false, not "keep stored".
func (c GuildConfig) Merge(in GuildConfigPatch) GuildConfig {
	out := c
	if in.Channels != nil {
		out.Channels = in.Channels
	}
	if in.Role != nil {
		out.Role = strings.TrimSpace(*in.Role)
	}
	if in.ManagerRole != nil {
		out.ManagerRole = strings.TrimSpace(*in.ManagerRole)
	}
	if in.Password != nil {
		out.Password = *in.Password
	}
	if in.Hidden != nil {
		out.Hidden = *in.Hidden
	}
	if in.Pruning != nil {
		out.Pruning = *in.Pruning
	}
	if in.Embeds != nil {
		out.Embeds = *in.Embeds
	}
	if in.EmbedColor != nil {
		out.EmbedColor = *in.EmbedColor
	}
	if in.Lang != nil && *in.Lang != "" {
		out.Lang = *in.Lang
	}
	return out
}

// GuildConfigPatch carries a partial update from the dashboard.
// Nil means "not submitted"; the stored value wins.
type GuildConfigPatch struct {
	Channels    []string `json:"channels"`
	Role        *string  `json:"role"`
	ManagerRole *string  `json:"managerRole"`
	Password    *string  `json:"password"`
	Hidden      *bool    `json:"hidden"`
	Pruning     *bool    `json:"pruning"`
	Embeds      *bool    `json:"embeds"`
	EmbedColor  *string  `json:"embedColor"`
	Lang        *string  `json:"lang"`
}
