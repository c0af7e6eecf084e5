package timefmt_test

import (
	"testing"
	"time"

	"github.com/questboard/questboard/internal/app/system/timefmt"
)

func TestParse_UsesStoredOffset(t *testing.T) {
	got, err := timefmt.Parse("2021-03-04", "19:00", -5)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// 19:00 at UTC-5 is 00:00 UTC the next day.
	want := time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.UTC().Equal(want) {
		t.Errorf("instant: got %v, want %v", got.UTC(), want)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := timefmt.Parse("next thursday", "19:00", 0); err == nil {
		t.Error("expected error for unparseable date")
	}
	if _, err := timefmt.Parse("2021-03-04", "", 0); err == nil {
		t.Error("expected error for empty time")
	}
}

func TestGameMoment_Fields(t *testing.T) {
	now := time.Date(2021, 3, 3, 12, 0, 0, 0, time.UTC)
	m, err := timefmt.GameMoment("2021-03-04", "19:00", -5, now)
	if err != nil {
		t.Fatalf("GameMoment failed: %v", err)
	}

	if m.Raw != "2021-03-04 19:00 UTC-5" {
		t.Errorf("Raw: got %q", m.Raw)
	}
	if m.ISOUTC != "20210305T000000Z" {
		t.Errorf("ISOUTC: got %q", m.ISOUTC)
	}
	if m.ISO != "2021-03-04T19:00:00-05:00" {
		t.Errorf("ISO: got %q", m.ISO)
	}
	if m.Date != "Thu, Mar 4, 2021 7:00 PM" {
		t.Errorf("Date: got %q", m.Date)
	}
}

func TestGameMoment_PositiveOffsetRaw(t *testing.T) {
	now := time.Date(2021, 3, 3, 12, 0, 0, 0, time.UTC)
	m, err := timefmt.GameMoment("2021-03-04", "09:30", 2, now)
	if err != nil {
		t.Fatalf("GameMoment failed: %v", err)
	}
	if m.Raw != "2021-03-04 09:30 UTC+2" {
		t.Errorf("Raw: got %q", m.Raw)
	}
}

func TestCalendarLabels(t *testing.T) {
	// now: Wednesday 2021-03-03 12:00 UTC, games stored at UTC+0.
	now := time.Date(2021, 3, 3, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		date string
		want string
	}{
		{"2021-03-03", "Today at 7:00 PM"},
		{"2021-03-04", "Tomorrow at 7:00 PM"},
		{"2021-03-06", "Saturday at 7:00 PM"},
		{"2021-03-02", "Yesterday at 7:00 PM"},
		{"2021-02-28", "Last Sunday at 7:00 PM"},
		{"2021-04-20", "04/20/2021"},
		{"2021-02-01", "02/01/2021"},
	}
	for _, c := range cases {
		m, err := timefmt.GameMoment(c.date, "19:00", 0, now)
		if err != nil {
			t.Fatalf("GameMoment(%s) failed: %v", c.date, err)
		}
		if m.Calendar != c.want {
			t.Errorf("Calendar for %s: got %q, want %q", c.date, m.Calendar, c.want)
		}
	}
}

func TestFromNow(t *testing.T) {
	now := time.Date(2021, 3, 3, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(20 * time.Second), "in a few seconds"},
		{now.Add(60 * time.Second), "in a minute"},
		{now.Add(10 * time.Minute), "in 10 minutes"},
		{now.Add(time.Hour), "in an hour"},
		{now.Add(5 * time.Hour), "in 5 hours"},
		{now.Add(24 * time.Hour), "in a day"},
		{now.Add(3 * 24 * time.Hour), "in 3 days"},
		{now.Add(30 * 24 * time.Hour), "in a month"},
		{now.Add(90 * 24 * time.Hour), "in 3 months"},
		{now.Add(365 * 24 * time.Hour), "in a year"},
		{now.Add(2 * 365 * 24 * time.Hour), "in 2 years"},
		{now.Add(-2 * time.Hour), "2 hours ago"},
		{now.Add(-3 * 24 * time.Hour), "3 days ago"},
	}
	for _, c := range cases {
		if got := timefmt.FromNow(c.at, now); got != c.want {
			t.Errorf("FromNow(%v): got %q, want %q", c.at.Sub(now), got, c.want)
		}
	}
}
