package bank_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bankist/internal/bank"
	"bankist/internal/bank/memory"
	"bankist/internal/core"
)

func newTestService(t *testing.T) (*bank.Service, bank.Ledger) {
	t.Helper()
	store := memory.New()
	if err := store.Seed(context.Background(), bank.SeedAccounts(time.Now())); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return bank.NewService(store), store
}

func balanceOf(t *testing.T, ledger bank.Ledger, username string) int64 {
	t.Helper()
	a, err := ledger.FindByUsername(context.Background(), username)
	if err != nil {
		t.Fatalf("find %s: %v", username, err)
	}
	return a.Balance().Cents
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		pin      int
		wantErr  error
	}{
		{"valid credentials", "js", 1111, nil},
		{"wrong pin", "js", 9999, bank.ErrInvalidCredentials},
		{"unknown user", "zz", 1111, bank.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := svc.Authenticate(ctx, tt.username, tt.pin)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && a.Username != tt.username {
				t.Errorf("username = %q, want %q", a.Username, tt.username)
			}
		})
	}
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		to      string
		cents   int64
		wantErr error
	}{
		{"valid transfer", "jd", 5000, nil},
		{"zero amount", "jd", 0, bank.ErrNonPositiveAmount},
		{"negative amount", "jd", -100, bank.ErrNonPositiveAmount},
		{"self transfer", "js", 5000, bank.ErrSelfTransfer},
		{"unknown recipient", "zz", 5000, bank.ErrUnknownRecipient},
		{"insufficient funds", "jd", 1_000_000_00, bank.ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ledger := newTestService(t)
			fromBefore := balanceOf(t, ledger, "js")
			toBefore := int64(0)
			if tt.to != "js" && tt.to != "zz" {
				toBefore = balanceOf(t, ledger, tt.to)
			}

			err := svc.Transfer(ctx, "js", tt.to, core.Money{Cents: tt.cents})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				if got := balanceOf(t, ledger, "js"); got != fromBefore {
					t.Errorf("failed transfer changed sender balance: %d -> %d", fromBefore, got)
				}
				return
			}
			if got := balanceOf(t, ledger, "js"); got != fromBefore-tt.cents {
				t.Errorf("sender balance = %d, want %d", got, fromBefore-tt.cents)
			}
			if got := balanceOf(t, ledger, tt.to); got != toBefore+tt.cents {
				t.Errorf("recipient balance = %d, want %d", got, toBefore+tt.cents)
			}
		})
	}
}

func TestTransferTimestampsMatch(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	if err := svc.Transfer(ctx, "js", "jd", core.Money{Cents: 2500}); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	from, _ := ledger.FindByUsername(ctx, "js")
	to, _ := ledger.FindByUsername(ctx, "jd")
	fromLast := from.Movements[len(from.Movements)-1]
	toLast := to.Movements[len(to.Movements)-1]

	if fromLast.Amount.Cents != -2500 || toLast.Amount.Cents != 2500 {
		t.Errorf("movement amounts = %d / %d, want -2500 / 2500", fromLast.Amount.Cents, toLast.Amount.Cents)
	}
	if !fromLast.Time.Equal(toLast.Time) {
		t.Errorf("movement timestamps differ: %v vs %v", fromLast.Time, toLast.Time)
	}
}

func TestRequestLoan(t *testing.T) {
	// Steven's movements are [200 -200 340 -300 -20 50 400 -460]:
	// the 400 entry covers loans up to 4000.
	ctx := context.Background()

	tests := []struct {
		name    string
		cents   int64
		wantErr error
	}{
		{"covered by a movement", 2000_00, nil},
		{"exactly ten times the biggest movement", 4000_00, nil},
		{"nothing covers ten percent", 5000_00, bank.ErrLoanDenied},
		{"zero amount", 0, bank.ErrNonPositiveAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			err := svc.RequestLoan(ctx, "stw", core.Money{Cents: tt.cents})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGrantLoan(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	before := balanceOf(t, ledger, "ss")
	if err := svc.GrantLoan(ctx, "ss", core.Money{Cents: 50000}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if got := balanceOf(t, ledger, "ss"); got != before+50000 {
		t.Errorf("balance = %d, want %d", got, before+50000)
	}
}

func TestCloseAccount(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		current  string
		username string
		pin      int
		wantErr  error
	}{
		{"valid closure", "ss", "ss", 4444, nil},
		{"wrong pin", "ss", "ss", 1234, bank.ErrInvalidCredentials},
		{"not the logged-in account", "js", "ss", 4444, bank.ErrInvalidCredentials},
		{"unknown account", "zz", "zz", 4444, bank.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ledger := newTestService(t)
			err := svc.CloseAccount(ctx, tt.current, tt.username, tt.pin)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}

			_, findErr := ledger.FindByUsername(ctx, tt.username)
			if tt.wantErr == nil && !errors.Is(findErr, bank.ErrUnknownAccount) {
				t.Errorf("account still present after closure: %v", findErr)
			}
			if tt.wantErr != nil && tt.username != "zz" && findErr != nil {
				t.Errorf("failed closure removed the account: %v", findErr)
			}
		})
	}
}

func TestSeedAccounts(t *testing.T) {
	accounts := bank.SeedAccounts(time.Now())
	if len(accounts) != 4 {
		t.Fatalf("seeded %d accounts, want 4", len(accounts))
	}

	want := map[string]int{"js": 1111, "jd": 2222, "stw": 3333, "ss": 4444}
	for _, a := range accounts {
		pin, ok := want[a.Username]
		if !ok {
			t.Errorf("unexpected username %q", a.Username)
			continue
		}
		if a.PIN != pin {
			t.Errorf("%s pin = %d, want %d", a.Username, a.PIN, pin)
		}
		if len(a.Movements) == 0 {
			t.Errorf("%s has no movements", a.Username)
		}
		if err := a.Validate(); err != nil {
			t.Errorf("%s does not validate: %v", a.Username, err)
		}
	}
}
