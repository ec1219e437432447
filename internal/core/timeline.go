package core

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// DayLabel classifies a movement timestamp relative to now:
//
//	"TODAY"       absolute difference under one day
//	"YESTERDAY"   exactly one day
//	"N DAYS AGO"  between one and seven days, N truncated
//	"dd/mm/yyyy"  everything else, zero-padded calendar date
//
// Exactly seven days falls through to the calendar date; there are no
// week/month/year buckets. Future timestamps use the same
// absolute-difference rule.
func DayLabel(ts, now time.Time) string {
	diff := now.Sub(ts)
	if diff < 0 {
		diff = -diff
	}
	days := float64(diff) / float64(day)

	switch {
	case days < 1:
		return "TODAY"
	case days == 1:
		return "YESTERDAY"
	case days < 7:
		return fmt.Sprintf("%d DAYS AGO", int(days))
	default:
		return fmt.Sprintf("%02d/%02d/%d", ts.Day(), int(ts.Month()), ts.Year())
	}
}
