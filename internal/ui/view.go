package ui

import (
	"fmt"
	"sort"
	"time"

	"bankist/internal/cache"
	"bankist/internal/core"
)

// ledgerView is the part of a frame that only changes when the
// movement list does, cached between renders. Day labels drift as time
// passes, so entries get a short TTL instead of explicit invalidation.
type ledgerView struct {
	rows    []Row
	summary core.Summary
}

type Builder struct {
	views *cache.LRU[ledgerView]
}

func NewBuilder() *Builder {
	return &Builder{views: cache.NewLRU[ledgerView](16, time.Minute)}
}

// LoggedOut is the pre-login frame.
func (b *Builder) LoggedOut(now time.Time) RenderModel {
	return RenderModel{ClockLabel: clockLabel(now)}
}

// Build assembles a frame for the authenticated account.
func (b *Builder) Build(a *core.Account, timerLabel string, sorted bool, now time.Time) RenderModel {
	key := fmt.Sprintf("%s:%d:%t", a.Username, len(a.Movements), sorted)
	view, ok := b.views.Get(key)
	if !ok {
		view = buildLedgerView(a, sorted, now)
		b.views.Set(key, view)
	}

	return RenderModel{
		LoggedIn:    true,
		WelcomeName: a.FirstName(),
		Balance:     view.summary.Balance,
		In:          view.summary.Income,
		Out:         view.summary.Expenses,
		Interest:    view.summary.Interest,
		Rows:        view.rows,
		TimerLabel:  timerLabel,
		ClockLabel:  clockLabel(now),
		Currency:    a.Currency,
		Locale:      a.Locale,
		Sorted:      sorted,
	}
}

func buildLedgerView(a *core.Account, sorted bool, now time.Time) ledgerView {
	movements := a.Movements
	if sorted {
		movements = append([]core.Movement(nil), movements...)
		// Ascending by amount; each movement keeps its own date.
		sort.SliceStable(movements, func(i, j int) bool {
			return movements[i].Amount.Cents < movements[j].Amount.Cents
		})
	}

	rows := make([]Row, len(movements))
	for i, mv := range movements {
		rows[i] = Row{
			Amount:   mv.Amount,
			Kind:     mv.Kind(),
			DayLabel: core.DayLabel(mv.Time, now),
		}
	}

	return ledgerView{rows: rows, summary: core.Summarize(a.Movements, a.InterestRate)}
}

func clockLabel(now time.Time) string {
	return now.Format("02/01/2006, 15:04")
}
