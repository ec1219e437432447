// Package ui defines the narrow presentation port the core renders
// through, and a minimal terminal adapter behind it. Locale-aware
// currency and date formatting belongs to the adapter; the render
// model only carries the account's formatting hints.
package ui

import "bankist/internal/core"

// Row is one ledger line.
type Row struct {
	Amount   core.Money
	Kind     core.MovementKind
	DayLabel string
}

// RenderModel is everything the presentation needs to paint a frame.
type RenderModel struct {
	LoggedIn    bool
	WelcomeName string

	Balance  core.Money
	In       core.Money
	Out      core.Money
	Interest float64
	Rows     []Row

	TimerLabel string
	ClockLabel string

	Currency string
	Locale   string
	Sorted   bool
}

// Renderer paints a frame. Implementations must not mutate core state;
// they only ever receive value copies.
type Renderer interface {
	Render(m RenderModel)
}
