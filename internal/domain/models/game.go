// internal/domain/models/game.go
package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scheduling method for a game's signup list.
const (
	MethodAutomated = "automated"
	MethodCustom    = "custom"
)

// Game is a scheduled session announced by the bot.
//
// Field names mirror the wire/storage names the bot has always used:
// S is the guild (server) id, C the announcement channel id. Timezone
// is the integer UTC offset the organizer picked when posting;
// Timestamp is the session start in epoch milliseconds.
type Game struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	S                     string             `bson:"s" json:"s"`
	C                     string             `bson:"c" json:"c"`
	Adventure             string             `bson:"adventure" json:"adventure"`
	DM                    string             `bson:"dm" json:"dm"`
	Where                 string             `bson:"where" json:"where"`
	Description           string             `bson:"description" json:"description"`
	Reserved              string             `bson:"reserved" json:"reserved"`
	Method                string             `bson:"method" json:"method"`
	CustomSignup          string             `bson:"customSignup" json:"customSignup"`
	When                  string             `bson:"when" json:"when"`
	Date                  string             `bson:"date" json:"date"`
	Time                  string             `bson:"time" json:"time"`
	Timezone              int                `bson:"timezone" json:"timezone"`
	Players               int                `bson:"players" json:"players"`
	MinPlayers            int                `bson:"minPlayers" json:"minPlayers"`
	Reminder              string             `bson:"reminder" json:"reminder"`
	GameImage             string             `bson:"gameImage" json:"gameImage"`
	Frequency             string             `bson:"frequency" json:"frequency"`
	Weekdays              [7]bool            `bson:"weekdays" json:"weekdays"`
	MonthlyType           string             `bson:"monthlyType" json:"monthlyType"`
	ClearReservedOnRepeat bool               `bson:"clearReservedOnRepeat" json:"clearReservedOnRepeat"`
	HideDate              bool               `bson:"hideDate" json:"hideDate"`
	Timestamp             int64              `bson:"timestamp" json:"timestamp"`
}

// ReservedSlot returns the 1-based roster position of tag, or 0 when
// the tag is not signed up. The roster is free-form text: one mention
// or tag per line with an optional "@" prefix. Position is the line
// number within the roster, so a slot past Players means waitlisted.
// Whitespace-only lines never match.
func (g Game) ReservedSlot(tag string) int {
	for i, line := range splitLines(g.Reserved) {
		t := strings.TrimPrefix(strings.TrimSpace(line), "@")
		if t != "" && t == tag {
			return i + 1
		}
	}
	return 0
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
