// internal/app/account/enrich.go
package account

import (
	"context"
	"fmt"
	"sort"

	"github.com/questboard/questboard/internal/app/system/timefmt"
	"go.uber.org/zap"
)

// attachGames fetches the games matching the page policy for the
// aggregated guild set and attaches each, enriched, to its owning
// guild view.
//
// A game whose guild is no longer in the set (stale reference) is
// dropped silently. A game with an unparseable stored time is skipped
// and logged so one malformed record cannot block a guild's list.
func (a *Assembler) attachGames(ctx context.Context, acct *Account, page Page) error {
	byID := make(map[string]*GuildView, len(acct.Guilds))
	ids := make([]string, 0, len(acct.Guilds))
	for _, g := range acct.Guilds {
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	now := a.now()
	isOwner := a.OwnerTag != "" && acct.User.Tag == a.OwnerTag
	q := page.GamesQuery(ids, acct.User.Tag, isOwner, now)

	found, err := a.Games.Find(ctx, q)
	if err != nil {
		return fmt.Errorf("fetch games: %w", err)
	}

	for _, g := range found {
		guild, ok := byID[g.S]
		if !ok {
			continue
		}

		moment, err := timefmt.GameMoment(g.Date, g.Time, g.Timezone, now)
		if err != nil {
			a.Log.Warn("skipping game with malformed schedule",
				zap.String("game", g.ID.Hex()),
				zap.String("guild", g.S),
				zap.Error(err))
			continue
		}

		slot := g.ReservedSlot(acct.User.Tag)
		guild.Games = append(guild.Games, GameView{
			Game:       g,
			Moment:     moment,
			Slot:       slot,
			SignedUp:   slot > 0 && slot <= g.Players,
			Waitlisted: slot > g.Players,
		})
	}

	for _, g := range acct.Guilds {
		games := g.Games
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].Timestamp < games[j].Timestamp
		})
	}
	return nil
}
