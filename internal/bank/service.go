// Package bank implements the account store operations: login,
// transfers, loan requests and account closure. All mutation goes
// through the Ledger port; the service itself keeps no account state.
package bank

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bankist/internal/core"
	applog "bankist/internal/log"
)

type Service struct {
	ledger Ledger
	now    func() time.Time
}

func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger, now: time.Now}
}

// Authenticate succeeds iff the username resolves and the pin matches
// exactly. Unknown user and wrong pin collapse into the same error so
// the caller cannot tell them apart, mirroring the silent login gate.
func (s *Service) Authenticate(ctx context.Context, username string, pin int) (*core.Account, error) {
	a, err := s.ledger.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUnknownAccount) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if a.PIN != pin {
		return nil, ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "login succeeded",
		applog.FieldComponent, applog.ComponentBank,
		applog.FieldOperation, applog.OpLogin,
		applog.FieldUsername, a.Username)
	return a, nil
}

// Account returns a snapshot of the named account.
func (s *Service) Account(ctx context.Context, username string) (*core.Account, error) {
	return s.ledger.FindByUsername(ctx, username)
}

// Transfer moves amount from one account to another. Both movements
// are appended atomically with the same timestamp.
func (s *Service) Transfer(ctx context.Context, fromUsername, toUsername string, amount core.Money) error {
	if amount.Cents <= 0 {
		return ErrNonPositiveAmount
	}

	from, err := s.ledger.FindByUsername(ctx, fromUsername)
	if err != nil {
		return err
	}
	if toUsername == from.Username {
		return ErrSelfTransfer
	}
	to, err := s.ledger.FindByUsername(ctx, toUsername)
	if err != nil {
		if errors.Is(err, ErrUnknownAccount) {
			return ErrUnknownRecipient
		}
		return err
	}
	if from.Balance().Cents < amount.Cents {
		return ErrInsufficientFunds
	}

	if err := s.ledger.AppendTransfer(ctx, from.Username, to.Username, amount, s.now()); err != nil {
		return err
	}

	slog.InfoContext(ctx, "transfer completed",
		applog.FieldComponent, applog.ComponentBank,
		applog.FieldOperation, applog.OpTransfer,
		applog.FieldUsername, from.Username,
		applog.FieldRecipient, to.Username,
		applog.FieldAmount, amount.Cents)
	return nil
}

// RequestLoan checks the affordability rule without touching the
// ledger: some existing deposit must reach 10% of the requested
// amount. The credit itself happens later via GrantLoan, after the
// simulated approval delay.
func (s *Service) RequestLoan(ctx context.Context, username string, amount core.Money) error {
	if amount.Cents <= 0 {
		return ErrNonPositiveAmount
	}
	a, err := s.ledger.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	for _, mv := range a.Movements {
		if mv.Amount.Cents*10 >= amount.Cents {
			return nil
		}
	}
	return ErrLoanDenied
}

// GrantLoan credits an approved loan as a single positive movement.
func (s *Service) GrantLoan(ctx context.Context, username string, amount core.Money) error {
	if amount.Cents <= 0 {
		return ErrNonPositiveAmount
	}
	if err := s.ledger.AppendMovement(ctx, username, core.Movement{Amount: amount, Time: s.now()}); err != nil {
		return err
	}

	slog.InfoContext(ctx, "loan credited",
		applog.FieldComponent, applog.ComponentBank,
		applog.FieldOperation, applog.OpLoan,
		applog.FieldUsername, username,
		applog.FieldAmount, amount.Cents)
	return nil
}

// CloseAccount removes the account iff it is the one currently logged
// in and the confirmation pin matches. Every failure mode maps to
// ErrInvalidCredentials: closure gives no hints either.
func (s *Service) CloseAccount(ctx context.Context, currentUsername, username string, pin int) error {
	if username != currentUsername {
		return ErrInvalidCredentials
	}
	a, err := s.ledger.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUnknownAccount) {
			return ErrInvalidCredentials
		}
		return err
	}
	if a.PIN != pin {
		return ErrInvalidCredentials
	}

	if err := s.ledger.Remove(ctx, username); err != nil {
		return err
	}

	slog.InfoContext(ctx, "account closed",
		applog.FieldComponent, applog.ComponentBank,
		applog.FieldOperation, applog.OpClose,
		applog.FieldUsername, username)
	return nil
}
