package model

import (
	"fmt"
	"time"
)

// Period is a requested historical range.
type Period string

const (
	Period1d  Period = "1d"
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"
	Period10y Period = "10y"
	PeriodYtd Period = "ytd"
	PeriodMax Period = "max"
)

// maxEpoch is the start date used for the "max" period.
var maxEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Period1d, Period5d, Period1mo, Period3mo, Period6mo,
		Period1y, Period2y, Period5y, Period10y, PeriodYtd, PeriodMax:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Start resolves the period to a concrete range start relative to now.
// "ytd" is January 1 of now's year; "max" is a fixed distant epoch.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case Period1d:
		return now.AddDate(0, 0, -1)
	case Period5d:
		return now.AddDate(0, 0, -5)
	case Period1mo:
		return now.AddDate(0, -1, 0)
	case Period3mo:
		return now.AddDate(0, -3, 0)
	case Period6mo:
		return now.AddDate(0, -6, 0)
	case Period1y:
		return now.AddDate(-1, 0, 0)
	case Period2y:
		return now.AddDate(-2, 0, 0)
	case Period5y:
		return now.AddDate(-5, 0, 0)
	case Period10y:
		return now.AddDate(-10, 0, 0)
	case PeriodYtd:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case PeriodMax:
		return maxEpoch
	}
	return now.AddDate(0, -1, 0)
}

// Days returns the number of calendar days the period spans from now.
func (p Period) Days(now time.Time) int {
	d := int(now.Sub(p.Start(now)).Hours() / 24)
	if d < 1 {
		d = 1
	}
	return d
}
