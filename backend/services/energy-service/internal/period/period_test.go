package period

import (
	"testing"
	"time"
)

func TestResolveKnownTokens(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		token string
		start time.Time
		count int
	}{
		{"day", now.Add(-24 * time.Hour), 24},
		{"week", now.AddDate(0, 0, -7), 7},
		{"month", now.AddDate(0, -1, 0), 30},
		{"year", now.AddDate(-1, 0, 0), 12},
	}

	for _, tc := range cases {
		win := Resolve(tc.token, now)
		if !win.Start.Equal(tc.start) {
			t.Errorf("Resolve(%q) start = %v, want %v", tc.token, win.Start, tc.start)
		}
		if win.SampleCount != tc.count {
			t.Errorf("Resolve(%q) count = %d, want %d", tc.token, win.SampleCount, tc.count)
		}
	}
}

func TestResolveUnknownTokenDefaultsToDay(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	day := Resolve(TokenDay, now)
	for _, token := range []string{"", "bogus", "DAY", "hour"} {
		got := Resolve(token, now)
		if !got.Start.Equal(day.Start) || got.SampleCount != day.SampleCount {
			t.Errorf("Resolve(%q) = %+v, want day window %+v", token, got, day)
		}
	}
}
