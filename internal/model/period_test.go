package model

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	valid := []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}
	for _, s := range valid {
		if _, err := ParsePeriod(s); err != nil {
			t.Errorf("ParsePeriod(%q): unexpected error: %v", s, err)
		}
	}
	if _, err := ParsePeriod("7w"); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestPeriodStart_Ytd(t *testing.T) {
	// Regardless of what day "now" is, ytd starts January 1 of that year.
	for _, now := range []time.Time{
		time.Date(2026, time.August, 30, 15, 4, 5, 0, time.UTC),
		time.Date(2025, time.January, 1, 0, 0, 1, 0, time.UTC),
		time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC),
	} {
		start := PeriodYtd.Start(now)
		if start.Year() != now.Year() || start.Month() != time.January || start.Day() != 1 {
			t.Errorf("ytd start for %v = %v, want Jan 1 %d", now, start, now.Year())
		}
	}
}

func TestPeriodStart_Relative(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		period Period
		want   time.Time
	}{
		{Period1d, now.AddDate(0, 0, -1)},
		{Period1mo, now.AddDate(0, -1, 0)},
		{Period6mo, now.AddDate(0, -6, 0)},
		{Period1y, now.AddDate(-1, 0, 0)},
		{Period10y, now.AddDate(-10, 0, 0)},
	}
	for _, tt := range tests {
		if got := tt.period.Start(now); !got.Equal(tt.want) {
			t.Errorf("%s start = %v, want %v", tt.period, got, tt.want)
		}
	}
}

func TestPeriodStart_Max(t *testing.T) {
	now := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	start := PeriodMax.Start(now)
	if !start.Before(now.AddDate(-30, 0, 0)) {
		t.Errorf("max start %v is not a distant epoch", start)
	}
}

func TestPeriodDays(t *testing.T) {
	now := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	if d := Period1d.Days(now); d != 1 {
		t.Errorf("1d days = %d, want 1", d)
	}
	if d := Period1y.Days(now); d < 360 || d > 370 {
		t.Errorf("1y days = %d, want ~365", d)
	}
}
