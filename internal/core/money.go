// Package core holds the banking domain: accounts, movements, money
// handling and the ledger aggregation rules.
//
// This file contains the Money value type and parsing of user-entered
// amounts into cents.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in the smallest currency unit. Keeping cents in an
// int64 avoids floating-point drift in balance arithmetic; signs follow
// the movement convention (positive deposit, negative withdrawal).
type Money struct {
	Cents int64
}

// Units returns the amount in whole currency units as a float64.
// Intended for display and for the interest computation, which is
// defined over unit amounts; keep balance arithmetic in cents.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{Cents: -m.Cents}
}

// String formats the amount with two decimals, e.g. "1234.50".
func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// ParseAmount converts a user-entered decimal string to positive cents.
//
// Both dot (12.34) and comma (12,34) separators are accepted; a third
// decimal digit rounds half-up. Signs, malformed input and non-positive
// results all yield ErrInvalidAmount: operations on the ledger only
// ever take positive amounts, the direction comes from the operation.
//
// Examples:
//
//	ParseAmount("12.34") -> 1234 cents
//	ParseAmount("12,346") -> 1235 cents (rounds up)
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// Guard the *100 below against overflow.
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents}, nil
}
