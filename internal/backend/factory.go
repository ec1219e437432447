// Package backend selects and wires a ledger storage backend from
// configuration.
package backend

import (
	"fmt"

	"bankist/internal/bank"
	"bankist/internal/bank/memory"
	"bankist/internal/config"
	applog "bankist/internal/log"
	"bankist/internal/storage"
)

// Result bundles an opened ledger with its cleanup hook.
type Result struct {
	Ledger  bank.Ledger
	Cleanup func() error
}

// OpenLedger builds the backend named by cfg.LedgerBackend.
func OpenLedger(cfg *config.Config, logger *applog.Logger) (*Result, error) {
	switch cfg.LedgerBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteLedger(cfg.SQLiteDSN)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite ledger: %w", err)
		}
		logger.Info("initialized sqlite ledger", applog.FieldBackend, cfg.LedgerBackend, "dsn", cfg.SQLiteDSN)
		return &Result{Ledger: repo, Cleanup: repo.Close}, nil

	case "memory":
		logger.Info("initialized memory ledger", applog.FieldBackend, cfg.LedgerBackend)
		return &Result{Ledger: memory.New()}, nil

	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s", cfg.LedgerBackend)
	}
}
