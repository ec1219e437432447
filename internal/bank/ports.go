package bank

import (
	"context"
	"time"

	"bankist/internal/core"
)

// Ledger is the outbound port for account storage. Implementations
// return snapshot copies; callers never see shared mutable state.
//
// Movements are append-only: there is no edit or delete of history,
// only account removal.
type Ledger interface {
	// Seed replaces the active set with the given accounts.
	Seed(ctx context.Context, accounts []core.Account) error

	// FindByUsername returns the first account with the username, or
	// ErrUnknownAccount. A username collision silently shadows later
	// accounts, matching the lookup semantics of the demo data.
	FindByUsername(ctx context.Context, username string) (*core.Account, error)

	// Accounts lists the active set.
	Accounts(ctx context.Context) ([]core.Account, error)

	// AppendMovement adds one signed movement to an account.
	AppendMovement(ctx context.Context, username string, mv core.Movement) error

	// AppendTransfer atomically appends -amount to the sender and
	// +amount to the recipient, both stamped with at. Either both
	// appends happen or neither does.
	AppendTransfer(ctx context.Context, fromUsername, toUsername string, amount core.Money, at time.Time) error

	// Remove deletes an account from the active set.
	Remove(ctx context.Context, username string) error
}
