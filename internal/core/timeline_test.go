package core

import (
	"testing"
	"time"
)

func TestDayLabel(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"same instant", now, "TODAY"},
		{"23 hours ago", now.Add(-23 * time.Hour), "TODAY"},
		{"exactly 24 hours ago", now.Add(-24 * time.Hour), "YESTERDAY"},
		{"25 hours ago", now.Add(-25 * time.Hour), "1 DAYS AGO"},
		{"exactly 3 days ago", now.AddDate(0, 0, -3), "3 DAYS AGO"},
		{"6 days 23 hours ago", now.Add(-(6*24 + 23) * time.Hour), "6 DAYS AGO"},
		{"exactly 7 days ago", now.AddDate(0, 0, -7), "08/06/2025"},
		{"10 days ago", now.AddDate(0, 0, -10), "05/06/2025"},
		{"distant past", time.Date(2019, 11, 1, 10, 17, 0, 0, time.UTC), "01/11/2019"},
		{"3 days in the future", now.AddDate(0, 0, 3), "3 DAYS AGO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayLabel(tt.ts, now); got != tt.want {
				t.Errorf("DayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
