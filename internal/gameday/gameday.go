// Package gameday maps wall-clock instants to the venue's logical game
// dates. The venue's day runs past midnight: a 1 a.m. arrival belongs to
// the previous evening's session.
package gameday

import "time"

// DateLayout is the canonical YYYY-MM-DD form used for session keys.
const DateLayout = "2006-01-02"

// Sessions stay open until this hour of the following morning. An instant
// whose hour-of-day is in [0, rolloverHour] belongs to the previous date.
const rolloverHour = 4

// Resolve returns the logical game date for now, in now's own location.
// Callers convert to venue-local time first; the function itself never
// reads an ambient clock.
func Resolve(now time.Time) time.Time {
	if now.Hour() <= rolloverHour {
		now = now.AddDate(0, 0, -1)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ResolveString returns the logical game date formatted as YYYY-MM-DD.
func ResolveString(now time.Time) string {
	return Resolve(now).Format(DateLayout)
}

// DisplayDate renders a session date the way the floor screens show it,
// e.g. "Friday Aug 29, 2026". Unparseable input is returned as-is.
func DisplayDate(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Monday Jan 2, 2006")
}
