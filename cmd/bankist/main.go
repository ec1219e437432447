package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"bankist/internal/backend"
	"bankist/internal/bank"
	"bankist/internal/config"
	"bankist/internal/core"
	applog "bankist/internal/log"
	"bankist/internal/session"
	"bankist/internal/ui"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "bankist:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := applog.New(applog.ParseLevel(cfg.LogLevel), applog.ComponentApp)
	applog.SetDefault(logger)
	logger.Info("starting",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldBackend, cfg.LedgerBackend,
		"session_seconds", cfg.SessionSeconds)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := backend.OpenLedger(cfg, logger)
	if err != nil {
		return err
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	// Accounts are provisioned once per run and gone when it ends.
	if err := result.Ledger.Seed(ctx, bank.SeedAccounts(time.Now())); err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	logger.Info("accounts seeded", applog.FieldOperation, applog.OpSeed)

	svc := bank.NewService(result.Ledger)
	renderer := ui.NewTerminal(os.Stdout)
	dispatcher := session.NewDispatcher(svc, renderer, logger, session.Config{
		BudgetSeconds: cfg.SessionSeconds,
		TickInterval:  cfg.TickInterval,
		LoanDelay:     cfg.LoanDelay,
	})

	clock, err := session.NewClock(dispatcher, logger)
	if err != nil {
		return fmt.Errorf("start clock: %w", err)
	}
	clock.Start()
	defer func() { <-clock.Stop().Done() }()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(ctx)
	})
	g.Go(func() error {
		readIntents(ctx, dispatcher, stop)
		return nil
	})

	err = g.Wait()
	logger.Info("stopped", applog.FieldOperation, applog.OpShutdown)
	return err
}

// readIntents translates stdin lines into dispatcher intents:
//
//	login <user> <pin>
//	transfer <user> <amount>
//	loan <amount>
//	close <user> <pin>
//	sort | logout | quit
//
// Reading happens on a separate goroutine so a pending Scan cannot
// hold up shutdown; that goroutine is abandoned when the context ends.
func readIntents(ctx context.Context, d *session.Dispatcher, quit func()) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines:
			if !ok {
				// stdin closed, treat like quit.
				quit()
				return
			}
			line = l
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "login":
			if user, pin, ok := credentials(fields); ok {
				d.Login(user, pin)
			}
		case "transfer":
			if len(fields) == 3 {
				if amount, err := core.ParseAmount(fields[2]); err == nil {
					d.Transfer(fields[1], amount)
				}
			}
		case "loan":
			if len(fields) == 2 {
				if amount, err := core.ParseAmount(fields[1]); err == nil {
					d.RequestLoan(amount)
				}
			}
		case "close":
			if user, pin, ok := credentials(fields); ok {
				d.CloseAccount(user, pin)
			}
		case "sort":
			d.ToggleSort()
		case "logout":
			d.Logout()
		case "quit", "exit":
			quit()
			return
		}
	}
}

func credentials(fields []string) (string, int, bool) {
	if len(fields) != 3 {
		return "", 0, false
	}
	pin, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", 0, false
	}
	return fields[1], pin, true
}
