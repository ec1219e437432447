package bank

import (
	"time"

	"bankist/internal/core"
)

// seedAccount pairs whole-unit movement amounts with day offsets back
// from the seed instant, so the relative-date buckets (today,
// yesterday, a few days ago, calendar dates) are all populated on a
// fresh run.
type seedAccount struct {
	owner    string
	pin      int
	rate     float64
	currency string
	locale   string
	amounts  []int64 // whole units, signed
	daysAgo  []int
}

var seeds = []seedAccount{
	{
		owner: "Jonas Schmedtmann", pin: 1111, rate: 1.2, currency: "EUR", locale: "pt-PT",
		amounts: []int64{200, 450, -400, 3000, -650, -130, 70, 1300},
		daysAgo: []int{540, 480, 300, 120, 30, 8, 1, 0},
	},
	{
		owner: "Jessica Davis", pin: 2222, rate: 1.5, currency: "USD", locale: "en-US",
		amounts: []int64{5000, 3400, -150, -790, -3210, -1000, 8500, -30},
		daysAgo: []int{600, 410, 270, 140, 60, 14, 3, 0},
	},
	{
		owner: "Steven Thomas Williams", pin: 3333, rate: 0.7, currency: "EUR", locale: "en-GB",
		amounts: []int64{200, -200, 340, -300, -20, 50, 400, -460},
		daysAgo: []int{520, 400, 250, 100, 45, 10, 2, 0},
	},
	{
		owner: "Sarah Smith", pin: 4444, rate: 1.0, currency: "USD", locale: "en-US",
		amounts: []int64{430, 1000, 700, 50, 90},
		daysAgo: []int{300, 90, 45, 5, 0},
	},
}

// SeedAccounts builds the demo account set. Usernames are derived once
// here; movement timestamps count back from now.
func SeedAccounts(now time.Time) []core.Account {
	out := make([]core.Account, 0, len(seeds))
	for _, s := range seeds {
		a := core.Account{
			Owner:        s.owner,
			Username:     core.UsernameFor(s.owner),
			PIN:          s.pin,
			InterestRate: s.rate,
			Currency:     s.currency,
			Locale:       s.locale,
		}
		for i, units := range s.amounts {
			a.Movements = append(a.Movements, core.Movement{
				Amount: core.Money{Cents: units * 100},
				Time:   now.AddDate(0, 0, -s.daysAgo[i]),
			})
		}
		out = append(out, a)
	}
	return out
}
