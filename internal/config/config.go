package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Session
	SessionSeconds int           // countdown budget restored on login and on every balance change
	TickInterval   time.Duration // how often the countdown advances
	LoanDelay      time.Duration // simulated approval latency before a loan is credited

	// Ledger storage
	LedgerBackend string // "memory" or "sqlite"
	SQLiteDSN     string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		SessionSeconds: getEnvInt("SESSION_SECONDS", 300),
		TickInterval:   getEnvDuration("TICK_INTERVAL", time.Second),
		LoanDelay:      getEnvDuration("LOAN_DELAY", 2500*time.Millisecond),

		LedgerBackend: getEnv("LEDGER_BACKEND", "memory"),
		SQLiteDSN:     getEnv("SQLITE_DSN", ":memory:"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration, collecting every problem found.
func (c *Config) Validate() error {
	var errs []string

	if c.SessionSeconds < 1 {
		errs = append(errs, fmt.Sprintf("invalid session budget %d: must be at least 1 second", c.SessionSeconds))
	}
	if c.TickInterval < 10*time.Millisecond {
		errs = append(errs, fmt.Sprintf("invalid tick interval %v: must be at least 10ms", c.TickInterval))
	}
	if c.LoanDelay < 0 {
		errs = append(errs, fmt.Sprintf("invalid loan delay %v: must not be negative", c.LoanDelay))
	}

	switch c.LedgerBackend {
	case "memory", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid ledger backend '%s': must be one of [memory sqlite]", c.LedgerBackend))
	}
	if c.LedgerBackend == "sqlite" && c.SQLiteDSN == "" {
		errs = append(errs, "sqlite DSN cannot be empty when using the sqlite backend")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
