package core

// Summary aggregates a movement list into the figures the ledger view
// shows: running balance, deposit and withdrawal totals, and earned
// interest. Balance, Income and Expenses are exact cent sums; Interest
// stays a fractional unit amount, rounding it is the renderer's job.
type Summary struct {
	Balance  Money
	Income   Money
	Expenses Money   // absolute value of the withdrawal sum
	Interest float64 // whole currency units, unrounded
}

// minInterestUnits is the crediting floor: a deposit whose computed
// interest comes out below one whole unit earns nothing.
const minInterestUnits = 1.0

// Summarize computes the ledger summary for a movement list at the
// given interest rate (percent). It is a pure function: no movement is
// touched and empty input yields an all-zero summary.
func Summarize(movements []Movement, interestRate float64) Summary {
	var s Summary
	for _, mv := range movements {
		c := mv.Amount.Cents
		s.Balance.Cents += c
		switch {
		case c > 0:
			s.Income.Cents += c
			if earned := mv.Amount.Units() * interestRate / 100; earned >= minInterestUnits {
				s.Interest += earned
			}
		case c < 0:
			s.Expenses.Cents -= c
		}
	}
	return s
}
