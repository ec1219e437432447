package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"bankist/internal/bank"
	"bankist/internal/core"
)

func newTestLedger(t *testing.T) *SQLiteLedger {
	t.Helper()
	repo, err := NewSQLiteLedger(":memory:")
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	err = repo.Seed(context.Background(), bank.SeedAccounts(time.Now()))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func TestSQLiteSeedAndFind(t *testing.T) {
	repo := newTestLedger(t)
	ctx := context.Background()

	a, err := repo.FindByUsername(ctx, "js")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if a.Owner != "Jonas Schmedtmann" || a.PIN != 1111 {
		t.Errorf("account = %q pin %d", a.Owner, a.PIN)
	}
	if len(a.Movements) != 8 {
		t.Errorf("movements = %d, want 8", len(a.Movements))
	}
	if a.Balance().Cents != 384000 {
		t.Errorf("balance = %d, want 384000", a.Balance().Cents)
	}

	if _, err := repo.FindByUsername(ctx, "nobody"); !errors.Is(err, bank.ErrUnknownAccount) {
		t.Errorf("unknown lookup err = %v", err)
	}
}

func TestSQLiteSeedReplacesExistingData(t *testing.T) {
	repo := newTestLedger(t)
	ctx := context.Background()

	// Re-seeding must not duplicate accounts or movements.
	if err := repo.Seed(ctx, bank.SeedAccounts(time.Now())); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	accounts, err := repo.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if len(accounts) != 4 {
		t.Errorf("accounts = %d, want 4", len(accounts))
	}
}

func TestSQLiteAppendMovement(t *testing.T) {
	repo := newTestLedger(t)
	ctx := context.Background()

	at := time.Now().Round(0)
	err := repo.AppendMovement(ctx, "ss", core.Movement{Amount: core.Money{Cents: 12345}, Time: at})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	a, _ := repo.FindByUsername(ctx, "ss")
	last := a.Movements[len(a.Movements)-1]
	if last.Amount.Cents != 12345 {
		t.Errorf("last movement = %d, want 12345", last.Amount.Cents)
	}
	if !last.Time.Equal(at) {
		t.Errorf("timestamp = %v, want %v", last.Time, at)
	}

	err = repo.AppendMovement(ctx, "nobody", core.Movement{Amount: core.Money{Cents: 1}, Time: at})
	if !errors.Is(err, bank.ErrUnknownAccount) {
		t.Errorf("append to unknown err = %v", err)
	}
}

func TestSQLiteAppendTransfer(t *testing.T) {
	repo := newTestLedger(t)
	ctx := context.Background()

	jsBefore, _ := repo.FindByUsername(ctx, "js")
	jdBefore, _ := repo.FindByUsername(ctx, "jd")

	at := time.Now()
	if err := repo.AppendTransfer(ctx, "js", "jd", core.Money{Cents: 7000}, at); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	js, _ := repo.FindByUsername(ctx, "js")
	jd, _ := repo.FindByUsername(ctx, "jd")
	if got := js.Balance().Cents; got != jsBefore.Balance().Cents-7000 {
		t.Errorf("sender balance = %d", got)
	}
	if got := jd.Balance().Cents; got != jdBefore.Balance().Cents+7000 {
		t.Errorf("recipient balance = %d", got)
	}

	// A transfer to a missing recipient must leave the sender intact.
	err := repo.AppendTransfer(ctx, "js", "nobody", core.Money{Cents: 100}, at)
	if !errors.Is(err, bank.ErrUnknownAccount) {
		t.Fatalf("err = %v, want ErrUnknownAccount", err)
	}
	again, _ := repo.FindByUsername(ctx, "js")
	if got := again.Balance().Cents; got != js.Balance().Cents {
		t.Errorf("failed transfer moved money: %d -> %d", js.Balance().Cents, got)
	}
}

func TestSQLiteRemove(t *testing.T) {
	repo := newTestLedger(t)
	ctx := context.Background()

	if err := repo.Remove(ctx, "ss"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := repo.FindByUsername(ctx, "ss"); !errors.Is(err, bank.ErrUnknownAccount) {
		t.Errorf("removed account still found: %v", err)
	}
	if err := repo.Remove(ctx, "ss"); !errors.Is(err, bank.ErrUnknownAccount) {
		t.Errorf("second remove err = %v", err)
	}
}
