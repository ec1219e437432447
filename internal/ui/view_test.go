package ui

import (
	"testing"
	"time"

	"bankist/internal/core"
)

func testAccount(now time.Time) *core.Account {
	return &core.Account{
		Owner: "Jonas Schmedtmann", Username: "js", PIN: 1111,
		InterestRate: 1.2, Currency: "EUR", Locale: "pt-PT",
		Movements: []core.Movement{
			{Amount: core.Money{Cents: 20000}, Time: now.AddDate(0, 0, -30)},
			{Amount: core.Money{Cents: -6500}, Time: now.AddDate(0, 0, -3)},
			{Amount: core.Money{Cents: 130000}, Time: now},
		},
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	m := NewBuilder().Build(testAccount(now), "05:00", false, now)

	if !m.LoggedIn {
		t.Error("expected LoggedIn")
	}
	if m.WelcomeName != "Jonas" {
		t.Errorf("WelcomeName = %q, want Jonas", m.WelcomeName)
	}
	if m.Balance.Cents != 143500 {
		t.Errorf("Balance = %d, want 143500", m.Balance.Cents)
	}
	if m.In.Cents != 150000 || m.Out.Cents != 6500 {
		t.Errorf("In/Out = %d/%d, want 150000/6500", m.In.Cents, m.Out.Cents)
	}
	if len(m.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.Rows))
	}
	if m.Rows[1].Kind != core.Withdrawal || m.Rows[1].DayLabel != "3 DAYS AGO" {
		t.Errorf("row 1 = %v %q", m.Rows[1].Kind, m.Rows[1].DayLabel)
	}
	if m.Rows[2].DayLabel != "TODAY" {
		t.Errorf("row 2 label = %q, want TODAY", m.Rows[2].DayLabel)
	}
	if m.TimerLabel != "05:00" {
		t.Errorf("TimerLabel = %q", m.TimerLabel)
	}
	if m.Currency != "EUR" || m.Locale != "pt-PT" {
		t.Errorf("formatting hints = %q/%q", m.Currency, m.Locale)
	}
}

func TestBuildSorted(t *testing.T) {
	now := time.Now()
	m := NewBuilder().Build(testAccount(now), "05:00", true, now)

	if !m.Sorted {
		t.Error("expected Sorted flag")
	}
	want := []int64{-6500, 20000, 130000}
	for i, row := range m.Rows {
		if row.Amount.Cents != want[i] {
			t.Errorf("row %d amount = %d, want %d", i, row.Amount.Cents, want[i])
		}
	}
	// The withdrawal moved to the front and kept its own day label.
	if m.Rows[0].DayLabel != "3 DAYS AGO" {
		t.Errorf("sorted row 0 label = %q, want 3 DAYS AGO", m.Rows[0].DayLabel)
	}
}

func TestBuildCacheInvalidatesOnGrowth(t *testing.T) {
	now := time.Now()
	b := NewBuilder()
	a := testAccount(now)

	first := b.Build(a, "05:00", false, now)
	if len(first.Rows) != 3 {
		t.Fatalf("rows = %d", len(first.Rows))
	}

	// A new movement changes the cache key, so the view is rebuilt.
	a.Movements = append(a.Movements, core.Movement{Amount: core.Money{Cents: 5000}, Time: now})
	second := b.Build(a, "04:59", false, now)
	if len(second.Rows) != 4 {
		t.Errorf("rows after append = %d, want 4", len(second.Rows))
	}
	if second.Balance.Cents != first.Balance.Cents+5000 {
		t.Errorf("balance = %d, want %d", second.Balance.Cents, first.Balance.Cents+5000)
	}
}

func TestLoggedOut(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	m := NewBuilder().LoggedOut(now)
	if m.LoggedIn {
		t.Error("expected logged-out frame")
	}
	if m.ClockLabel != "15/06/2025, 09:30" {
		t.Errorf("ClockLabel = %q", m.ClockLabel)
	}
}
