package session

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	applog "bankist/internal/log"
)

// Clock refreshes the wall-clock display once per second. It only
// posts a repaint into the dispatcher; all state stays on the
// dispatcher's goroutine.
type Clock struct {
	cron *cron.Cron
}

func NewClock(d *Dispatcher, logger *applog.Logger) (*Clock, error) {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(
		logger.WithComponent(applog.ComponentClock).Handler(), slog.LevelInfo))
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cronLogger)))

	if _, err := c.AddFunc("* * * * * *", d.RefreshClock); err != nil {
		return nil, err
	}
	return &Clock{cron: c}, nil
}

func (c *Clock) Start() {
	c.cron.Start()
}

// Stop halts scheduling; the returned context is done once any running
// job has finished.
func (c *Clock) Stop() context.Context {
	return c.cron.Stop()
}
