// internal/app/system/timefmt/timefmt.go

// Package timefmt derives the display-time fields the dashboard shows
// for a scheduled game. All derivations use the offset the organizer
// stored on the game, never the viewer's timezone.
package timefmt

import (
	"fmt"
	"math"
	"time"
)

// Moment carries every display form of a game's start time.
type Moment struct {
	Raw      string `json:"raw"`      // "2021-03-04 19:00 UTC-5"
	ISOUTC   string `json:"isoutc"`   // "20210305T000000Z" (minutes kept, seconds forced to 00)
	ISO      string `json:"iso"`      // RFC 3339 in the game's own offset
	Date     string `json:"date"`     // long-form local date
	Calendar string `json:"calendar"` // "Tomorrow at 7:00 PM", "Last Monday at …", "03/04/2021"
	From     string `json:"from"`     // "in 3 days", "2 hours ago"
}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
	longLayout  = "Mon, Jan 2, 2006 3:04 PM"
	clockOut    = "3:04 PM"
)

// Parse combines a game's stored date, clock time, and integer UTC
// offset into an instant. The stored strings are free-form enough
// that parsing can fail; callers must treat that as a malformed
// record, not a fatal error.
func Parse(date, clock string, offset int) (time.Time, error) {
	loc := time.FixedZone(offsetName(offset), offset*3600)
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable game time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// GameMoment derives every display field for a game time relative to
// now. now is injected so enrichment is reproducible under test.
func GameMoment(date, clock string, offset int, now time.Time) (Moment, error) {
	t, err := Parse(date, clock, offset)
	if err != nil {
		return Moment{}, err
	}
	local := t // already in the game's own zone
	return Moment{
		Raw:      fmt.Sprintf("%s %s %s", date, clock, offsetName(offset)),
		ISOUTC:   t.UTC().Format("20060102T1504") + "00Z",
		ISO:      t.Format("2006-01-02T15:04:05-07:00"),
		Date:     local.Format(longLayout),
		Calendar: calendarLabel(local, now.In(local.Location())),
		From:     FromNow(t, now),
	}, nil
}

func offsetName(offset int) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
	}
	return fmt.Sprintf("UTC%s%d", sign, abs(offset))
}

// calendarLabel renders a calendar-relative label: day names within a
// week of now, Today/Tomorrow/Yesterday at the boundaries, and a
// plain date beyond that.
func calendarLabel(t, now time.Time) string {
	days := calendarDays(now, t)
	clock := t.Format(clockOut)
	switch {
	case days == 0:
		return "Today at " + clock
	case days == 1:
		return "Tomorrow at " + clock
	case days > 1 && days < 7:
		return t.Weekday().String() + " at " + clock
	case days == -1:
		return "Yesterday at " + clock
	case days < -1 && days > -7:
		return "Last " + t.Weekday().String() + " at " + clock
	default:
		return t.Format("01/02/2006")
	}
}

// calendarDays counts midnight crossings from a to b in b's zone.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	astart := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bstart := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bstart.Sub(astart).Hours() / 24)
}

// FromNow renders a humanized relative label ("in 3 days",
// "2 hours ago") using the same unit thresholds the dashboard has
// always shown: 45 s → minute, 45 min → hour, 22 h → day,
// 26 d → month, 11 mo → year.
func FromNow(t, now time.Time) string {
	d := t.Sub(now)
	future := d >= 0
	if !future {
		d = -d
	}
	label := relativeLabel(d)
	if future {
		return "in " + label
	}
	return label + " ago"
}

func relativeLabel(d time.Duration) string {
	sec := d.Seconds()
	min := math.Round(sec / 60)
	hrs := math.Round(sec / 3600)
	days := math.Round(sec / 86400)
	months := math.Round(days / 30)
	years := math.Round(days / 365)

	switch {
	case sec < 45:
		return "a few seconds"
	case sec < 90:
		return "a minute"
	case min < 45:
		return fmt.Sprintf("%.0f minutes", min)
	case min < 90:
		return "an hour"
	case hrs < 22:
		return fmt.Sprintf("%.0f hours", hrs)
	case hrs < 36:
		return "a day"
	case days < 26:
		return fmt.Sprintf("%.0f days", days)
	case days < 46:
		return "a month"
	case days < 320:
		return fmt.Sprintf("%.0f months", months)
	case days < 548:
		return "a year"
	default:
		return fmt.Sprintf("%.0f years", years)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
