// Package memory is the default in-process ledger backend: a mutex
// guarded account slice, reset on every run.
package memory

import (
	"context"
	"sync"
	"time"

	"bankist/internal/bank"
	"bankist/internal/core"
)

type Store struct {
	mu       sync.Mutex
	accounts []core.Account
}

func New() *Store {
	return &Store{}
}

// Seed replaces the active set. Accounts are copied in, movement
// slices included, so the caller keeps no handle on internal state.
func (s *Store) Seed(_ context.Context, accounts []core.Account) error {
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make([]core.Account, len(accounts))
	for i, a := range accounts {
		s.accounts[i] = snapshot(a)
	}
	return nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (*core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.find(username)
	if a == nil {
		return nil, bank.ErrUnknownAccount
	}
	cp := snapshot(*a)
	return &cp, nil
}

func (s *Store) Accounts(_ context.Context) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Account, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = snapshot(a)
	}
	return out, nil
}

func (s *Store) AppendMovement(_ context.Context, username string, mv core.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.find(username)
	if a == nil {
		return bank.ErrUnknownAccount
	}
	a.Movements = append(a.Movements, mv)
	return nil
}

// AppendTransfer performs both appends inside one critical section, so
// no observer can see a half-applied transfer.
func (s *Store) AppendTransfer(_ context.Context, fromUsername, toUsername string, amount core.Money, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.find(fromUsername)
	to := s.find(toUsername)
	if from == nil || to == nil {
		return bank.ErrUnknownAccount
	}

	from.Movements = append(from.Movements, core.Movement{Amount: amount.Neg(), Time: at})
	to.Movements = append(to.Movements, core.Movement{Amount: amount, Time: at})
	return nil
}

func (s *Store) Remove(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].Username == username {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return bank.ErrUnknownAccount
}

// find returns the first matching account; callers hold the lock.
func (s *Store) find(username string) *core.Account {
	for i := range s.accounts {
		if s.accounts[i].Username == username {
			return &s.accounts[i]
		}
	}
	return nil
}

func snapshot(a core.Account) core.Account {
	a.Movements = append([]core.Movement(nil), a.Movements...)
	return a
}
