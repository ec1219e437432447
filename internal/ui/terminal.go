package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Terminal is a plain-text renderer for running the demo in a shell.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Render(m RenderModel) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !m.LoggedIn {
		fmt.Fprintf(t.w, "\n[%s] Log in to get started\n", m.ClockLabel)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] Welcome back, %s\n", m.ClockLabel, m.WelcomeName)
	fmt.Fprintf(&b, "Balance: %s %s\n", m.Balance, m.Currency)

	for i, row := range m.Rows {
		fmt.Fprintf(&b, "  %2d %-10s %-12s %10s\n", i+1, row.Kind, row.DayLabel, row.Amount)
	}

	fmt.Fprintf(&b, "In: %s  Out: %s  Interest: %.2f\n", m.In, m.Out, m.Interest)
	fmt.Fprintf(&b, "Logout in %s\n", m.TimerLabel)
	io.WriteString(t.w, b.String())
}
