// Package storage is the sqlite-backed ledger. The default DSN is
// ":memory:", so the ledger lives and dies with the process just like
// the memory backend while still exercising a real SQL schema.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bankist/internal/bank"
	"bankist/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteLedger struct {
	db *sql.DB
}

func NewSQLiteLedger(dsn string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// One connection only: each connection to a :memory: DSN would
	// otherwise get its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

func (r *SQLiteLedger) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Seed wipes both tables and inserts the given accounts with their
// movement history. PINs are stored as-is; this is demo data, not a
// credential store.
func (r *SQLiteLedger) Seed(ctx context.Context, accounts []core.Account) error {
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movements`); err != nil {
		return fmt.Errorf("clear movements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}

	for _, a := range accounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (username, owner, pin, interest_rate, currency, locale) VALUES (?, ?, ?, ?, ?, ?)`,
			a.Username, a.Owner, a.PIN, a.InterestRate, a.Currency, a.Locale,
		); err != nil {
			return fmt.Errorf("insert account %s: %w", a.Username, err)
		}
		for _, mv := range a.Movements {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO movements (username, amount_cents, occurred_at) VALUES (?, ?, ?)`,
				a.Username, mv.Amount.Cents, mv.Time.UnixNano(),
			); err != nil {
				return fmt.Errorf("insert movement for %s: %w", a.Username, err)
			}
		}
	}

	return tx.Commit()
}

func (r *SQLiteLedger) FindByUsername(ctx context.Context, username string) (*core.Account, error) {
	var a core.Account
	err := r.db.QueryRowContext(ctx,
		`SELECT username, owner, pin, interest_rate, currency, locale FROM accounts WHERE username = ? LIMIT 1`,
		username,
	).Scan(&a.Username, &a.Owner, &a.PIN, &a.InterestRate, &a.Currency, &a.Locale)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bank.ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}

	movements, err := r.movements(ctx, username)
	if err != nil {
		return nil, err
	}
	a.Movements = movements
	return &a, nil
}

func (r *SQLiteLedger) Accounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT username, owner, pin, interest_rate, currency, locale FROM accounts ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.Username, &a.Owner, &a.PIN, &a.InterestRate, &a.Currency, &a.Locale); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	for i := range out {
		movements, err := r.movements(ctx, out[i].Username)
		if err != nil {
			return nil, err
		}
		out[i].Movements = movements
	}
	return out, nil
}

func (r *SQLiteLedger) AppendMovement(ctx context.Context, username string, mv core.Movement) error {
	if err := r.exists(ctx, username); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO movements (username, amount_cents, occurred_at) VALUES (?, ?, ?)`,
		username, mv.Amount.Cents, mv.Time.UnixNano(),
	); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// AppendTransfer writes both sides of a transfer in one transaction.
func (r *SQLiteLedger) AppendTransfer(ctx context.Context, fromUsername, toUsername string, amount core.Money, at time.Time) error {
	if err := r.exists(ctx, fromUsername); err != nil {
		return err
	}
	if err := r.exists(ctx, toUsername); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer tx: %w", err)
	}
	defer tx.Rollback()

	nanos := at.UnixNano()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO movements (username, amount_cents, occurred_at) VALUES (?, ?, ?)`,
		fromUsername, -amount.Cents, nanos,
	); err != nil {
		return fmt.Errorf("insert sender movement: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO movements (username, amount_cents, occurred_at) VALUES (?, ?, ?)`,
		toUsername, amount.Cents, nanos,
	); err != nil {
		return fmt.Errorf("insert recipient movement: %w", err)
	}

	return tx.Commit()
}

func (r *SQLiteLedger) Remove(ctx context.Context, username string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remove tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movements WHERE username = ?`, username); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return bank.ErrUnknownAccount
	}

	return tx.Commit()
}

func (r *SQLiteLedger) movements(ctx context.Context, username string) ([]core.Movement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT amount_cents, occurred_at FROM movements WHERE username = ? ORDER BY id`, username)
	if err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}
	defer rows.Close()

	var out []core.Movement
	for rows.Next() {
		var cents, nanos int64
		if err := rows.Scan(&cents, &nanos); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, core.Movement{
			Amount: core.Money{Cents: cents},
			Time:   time.Unix(0, nanos),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return out, nil
}

func (r *SQLiteLedger) exists(ctx context.Context, username string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE username = ?`, username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return bank.ErrUnknownAccount
	}
	if err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	return nil
}
