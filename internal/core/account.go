package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Deposit    MovementKind = "deposit"
	Withdrawal MovementKind = "withdrawal"
)

type (
	MovementKind string

	// Movement is a single signed ledger entry. Positive amounts are
	// deposits, negative amounts withdrawals. Each movement carries its
	// own timestamp, so amounts and dates cannot drift out of step.
	Movement struct {
		Amount Money
		Time   time.Time
	}

	Account struct {
		Owner        string
		Username     string
		PIN          int
		InterestRate float64 // percent applied to qualifying deposits
		Currency     string  // formatting hint for the renderer
		Locale       string  // formatting hint for the renderer
		Movements    []Movement
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyOwner    = errors.New("empty owner name")
	ErrInvalidPIN    = errors.New("invalid pin")
)

// Kind classifies the movement by the sign of its amount.
func (mv Movement) Kind() MovementKind {
	if mv.Amount.Cents > 0 {
		return Deposit
	}
	return Withdrawal
}

// UsernameFor derives the login name from an owner's display name:
// the lowercase initial of every whitespace-separated token, joined.
// "Jonas Schmedtmann" becomes "js". Collisions are not detected; the
// first matching account shadows later ones on lookup.
func UsernameFor(owner string) string {
	var b strings.Builder
	for _, token := range strings.Fields(owner) {
		r := []rune(strings.ToLower(token))
		if len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return b.String()
}

// FirstName returns the leading token of the owner name, used for the
// welcome greeting.
func (a Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Owner) == "" {
		return ErrEmptyOwner
	}
	if a.Username == "" {
		return ErrEmptyOwner
	}
	if a.PIN <= 0 {
		return ErrInvalidPIN
	}
	if a.InterestRate < 0 {
		return errors.New("negative interest rate")
	}
	return nil
}

// Balance is the running sum of all movements.
func (a Account) Balance() Money {
	var cents int64
	for _, mv := range a.Movements {
		cents += mv.Amount.Cents
	}
	return Money{Cents: cents}
}
