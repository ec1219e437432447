// Package session owns everything that happens between login and
// logout: the countdown state machine and the dispatcher that
// serializes user intents, timer ticks and scheduled continuations.
package session

import "fmt"

type TimerState int

const (
	Stopped TimerState = iota
	Running
	Expired
)

// Timer is the logout countdown. It is a plain state machine: the
// dispatcher feeds it ticks, it never schedules anything itself.
type Timer struct {
	state     TimerState
	remaining int
}

func NewTimer() *Timer {
	return &Timer{}
}

// Start begins a fresh countdown, replacing whatever came before. This
// is the only transition into Running.
func (t *Timer) Start(budgetSeconds int) {
	t.state = Running
	t.remaining = budgetSeconds
}

// Tick advances a running countdown by one second. It returns the
// label for the new value and whether the countdown just expired.
// Ticks in any other state are ignored.
func (t *Timer) Tick() (label string, expired bool) {
	if t.state != Running {
		return t.Label(), false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = Expired
		return t.Label(), true
	}
	return t.Label(), false
}

// Stop ends the countdown on explicit logout or account closure.
func (t *Timer) Stop() {
	t.state = Stopped
	t.remaining = 0
}

func (t *Timer) State() TimerState {
	return t.state
}

func (t *Timer) Remaining() int {
	return t.remaining
}

// Label formats the remaining time as MM:SS.
func (t *Timer) Label() string {
	return fmt.Sprintf("%02d:%02d", t.remaining/60, t.remaining%60)
}
