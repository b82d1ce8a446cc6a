package gameday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveBeforeRollover(t *testing.T) {
	// The small hours still belong to the previous evening's session
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"midnight", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), "2026-08-28"},
		{"three am", time.Date(2026, 8, 29, 3, 15, 0, 0, time.UTC), "2026-08-28"},
		{"four am sharp", time.Date(2026, 8, 29, 4, 0, 0, 0, time.UTC), "2026-08-28"},
		{"last minute of rollover", time.Date(2026, 8, 29, 4, 59, 59, 0, time.UTC), "2026-08-28"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveString(tc.now))
		})
	}
}

func TestResolveAfterRollover(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"five am", time.Date(2026, 8, 29, 5, 0, 0, 0, time.UTC), "2026-08-29"},
		{"noon", time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), "2026-08-29"},
		{"evening", time.Date(2026, 8, 29, 21, 30, 0, 0, time.UTC), "2026-08-29"},
		{"just before midnight", time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC), "2026-08-29"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveString(tc.now))
		})
	}
}

func TestResolveAcrossMonthBoundary(t *testing.T) {
	// 1 a.m. on the first of the month rolls back into the prior month
	now := time.Date(2026, 9, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-31", ResolveString(now))
}

func TestResolveKeepsLocation(t *testing.T) {
	loc := time.FixedZone("venue", -4*60*60)
	now := time.Date(2026, 8, 29, 2, 0, 0, 0, loc)

	resolved := Resolve(now)
	assert.Equal(t, loc, resolved.Location())
	assert.Equal(t, "2026-08-28", resolved.Format(DateLayout))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "Saturday Aug 29, 2026", DisplayDate("2026-08-29"))
	assert.Equal(t, "Sunday Mar 1, 2026", DisplayDate("2026-03-01"))

	// Unparseable input comes back unchanged
	assert.Equal(t, "not-a-date", DisplayDate("not-a-date"))
}
