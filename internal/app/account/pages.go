// internal/app/account/pages.go
package account

import (
	"time"

	"github.com/questboard/questboard/internal/app/store/games"
)

// Page identifies which dashboard page a resolution is for. Each page
// carries its own game filter and guild ordering policy.
type Page string

const (
	PageNone     Page = ""
	PageUpcoming Page = "upcoming"
	PageMyGames  Page = "my-games"
	PageCalendar Page = "calendar"
	PageServer   Page = "server"
)

// ParsePage maps a query-string value onto a known page. Unknown
// values behave like an unspecified page: no extra filtering.
func ParsePage(s string) Page {
	switch Page(s) {
	case PageUpcoming, PageMyGames, PageCalendar, PageServer:
		return Page(s)
	default:
		return PageNone
	}
}

// AdminOnly reports whether the page is restricted to guild admins.
func (p Page) AdminOnly() bool {
	return p == PageServer
}

// sortsByGames reports whether guilds are reordered by their soonest
// game instead of keeping snapshot enumeration order.
func (p Page) sortsByGames() bool {
	return p == PageUpcoming || p == PageMyGames
}

// GamesQuery builds the game-store query for this page.
//
//   - my-games: games the viewer runs or is signed up for.
//   - upcoming: future games, excluding the viewer's own unless the
//     viewer is the bot owner (the owner sees everything).
//   - other pages: guild-set scope only.
func (p Page) GamesQuery(guildIDs []string, tag string, isOwner bool, now time.Time) games.Query {
	q := games.Query{Guilds: guildIDs}
	switch p {
	case PageMyGames:
		q.MineTag = tag
	case PageUpcoming:
		q.After = now.UnixMilli()
		if !isOwner {
			q.ExcludeDM = tag
		}
	}
	return q
}
