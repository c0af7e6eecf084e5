// internal/app/account/account.go

// Package account resolves an authenticated Discord user into the
// authorized view the dashboard renders: the guilds they belong to,
// per-guild configuration and permissions, and the games relevant to
// the requested page.
package account

import (
	"context"
	"sort"
	"time"

	"github.com/questboard/questboard/internal/app/store/games"
	"github.com/questboard/questboard/internal/app/system/identity"
	"github.com/questboard/questboard/internal/app/system/snapshot"
	"github.com/questboard/questboard/internal/app/system/timefmt"
	"github.com/questboard/questboard/internal/domain/models"
	"go.uber.org/zap"
)

// GameView is a stored game plus the per-viewer fields derived at
// read time.
type GameView struct {
	models.Game
	Moment     timefmt.Moment `json:"moment"`
	Slot       int            `json:"slot"`
	SignedUp   bool           `json:"signedup"`
	Waitlisted bool           `json:"waitlisted"`
}

// GuildView is one guild as the requesting user is allowed to see it.
// Built fresh per request, never persisted.
type GuildView struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	IconURL              string             `json:"icon"`
	Member               snapshot.Member    `json:"member"`
	Channels             []snapshot.Channel `json:"channels"`
	AnnouncementChannels []snapshot.Channel `json:"announcementChannels"`
	Permission           bool               `json:"permission"`
	IsAdmin              bool               `json:"isAdmin"`
	Config               models.GuildConfig `json:"config"`
	Games                []GameView         `json:"games"`
}

// Account is one full identity resolution.
type Account struct {
	User   identity.Identity `json:"user"`
	Guilds []*GuildView      `json:"guilds"`
}

// Options selects how much of the account to resolve.
type Options struct {
	Guilds bool
	Games  bool
	Page   Page
}

// ConfigStore is the batched guild-config lookup the aggregator needs.
type ConfigStore interface {
	GetByGuilds(ctx context.Context, guildIDs []string) ([]models.GuildConfig, error)
}

// GameStore is the game lookup the enricher needs.
type GameStore interface {
	Find(ctx context.Context, q games.Query) ([]models.Game, error)
}

// IdentityFetcher resolves an access-token bundle to the user behind it.
type IdentityFetcher interface {
	FetchWithAccess(ctx context.Context, access models.TokenAccess) (identity.Identity, error)
}

// Assembler joins the live gateway snapshot, the config store, and
// the game store into Account values.
type Assembler struct {
	Snapshot snapshot.Source
	Configs  ConfigStore
	Games    GameStore
	Identity IdentityFetcher
	OwnerTag string // bot owner; sees hidden guilds and every page
	Log      *zap.Logger

	// Now is injected for tests; nil means time.Now.
	Now func() time.Time
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Fetch resolves an account. The identity call is the single upstream
// suspension point; its failure propagates unretried. Snapshot reads
// are a best-effort point-in-time view of gateway state.
func (a *Assembler) Fetch(ctx context.Context, access models.TokenAccess, opts Options) (Account, error) {
	user, err := a.Identity.FetchWithAccess(ctx, access)
	if err != nil {
		return Account{}, err
	}

	acct := Account{User: user, Guilds: []*GuildView{}}
	if !opts.Guilds {
		return acct, nil
	}

	guilds, err := a.aggregateGuilds(ctx, user, opts.Page)
	if err != nil {
		return Account{}, err
	}
	acct.Guilds = guilds

	if opts.Games {
		if err := a.attachGames(ctx, &acct, opts.Page); err != nil {
			return Account{}, err
		}
	}

	if opts.Page.sortsByGames() {
		sortGuildsByGames(acct.Guilds)
	}
	return acct, nil
}

// sortGuildsByGames orders guilds with games first (soonest game
// first) and gameless guilds after, alphabetically.
func sortGuildsByGames(guilds []*GuildView) {
	sort.SliceStable(guilds, func(i, j int) bool {
		gi, gj := guilds[i], guilds[j]
		if len(gi.Games) == 0 && len(gj.Games) == 0 {
			return gi.Name < gj.Name
		}
		if len(gi.Games) == 0 {
			return false
		}
		if len(gj.Games) == 0 {
			return true
		}
		return gi.Games[0].Timestamp < gj.Games[0].Timestamp
	})
}
