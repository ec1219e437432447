package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bankist/internal/bank"
	"bankist/internal/core"
	applog "bankist/internal/log"
	"bankist/internal/ui"
)

// Config tunes the dispatcher. A zero TickInterval disables the real
// ticker so tests can drive the countdown through Tick.
type Config struct {
	BudgetSeconds int
	TickInterval  time.Duration
	LoanDelay     time.Duration
}

// Dispatcher is the single serialization point of the app. One
// goroutine (Run) owns the session state, the countdown and all
// ledger mutation; user intents, ticker ticks and the delayed loan
// credit all arrive as commands on one channel, so nothing ever
// interleaves.
type Dispatcher struct {
	svc      *bank.Service
	views    *ui.Builder
	renderer ui.Renderer
	logger   *applog.Logger
	cfg      Config
	now      func() time.Time

	cmds chan func()

	// Everything below is touched only from the Run goroutine.
	timer     *Timer
	ticker    *time.Ticker
	loanTimer *time.Timer
	current   string // username of the authenticated account, "" when logged out
	sessionID string
	sorted    bool
}

func NewDispatcher(svc *bank.Service, renderer ui.Renderer, logger *applog.Logger, cfg Config) *Dispatcher {
	return &Dispatcher{
		svc:      svc,
		views:    ui.NewBuilder(),
		renderer: renderer,
		logger:   logger.WithComponent(applog.ComponentDispatcher),
		cfg:      cfg,
		now:      time.Now,
		cmds:     make(chan func(), 64),
	}
}

// Run executes commands until the context is cancelled. All handlers
// run here; the exported intent methods only enqueue.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.timer = NewTimer()
	d.render()

	for {
		var tickC <-chan time.Time
		if d.ticker != nil {
			tickC = d.ticker.C
		}
		select {
		case <-ctx.Done():
			d.endSession()
			d.logger.Info("dispatcher stopped", applog.FieldOperation, applog.OpShutdown)
			return ctx.Err()
		case cmd := <-d.cmds:
			cmd()
		case <-tickC:
			d.handleTick()
		}
	}
}

// Intents. Each posts a closure onto the command queue.

func (d *Dispatcher) Login(username string, pin int) {
	d.post(func() { d.handleLogin(username, pin) })
}

func (d *Dispatcher) Logout() {
	d.post(func() {
		d.logger.Info("logout", applog.FieldOperation, applog.OpLogout, applog.FieldSessionID, d.sessionID)
		d.endSession()
		d.render()
	})
}

func (d *Dispatcher) Transfer(toUsername string, amount core.Money) {
	d.post(func() { d.handleTransfer(toUsername, amount) })
}

func (d *Dispatcher) RequestLoan(amount core.Money) {
	d.post(func() { d.handleLoanRequest(amount) })
}

func (d *Dispatcher) CloseAccount(username string, pin int) {
	d.post(func() { d.handleClose(username, pin) })
}

func (d *Dispatcher) ToggleSort() {
	d.post(func() {
		if d.current != "" {
			d.sorted = !d.sorted
		}
		d.render()
	})
}

// Tick advances the countdown by one second. The internal ticker goes
// through the same path, so tests can drive time by calling this.
func (d *Dispatcher) Tick() {
	d.post(d.handleTick)
}

// RefreshClock repaints the current frame with a fresh wall clock.
func (d *Dispatcher) RefreshClock() {
	d.post(d.render)
}

func (d *Dispatcher) post(cmd func()) {
	d.cmds <- cmd
}

// Handlers, run loop only.

func (d *Dispatcher) handleLogin(username string, pin int) {
	a, err := d.svc.Authenticate(context.Background(), username, pin)
	if err != nil {
		// Silent failure: the frame simply does not change.
		d.logger.Debug("login rejected", applog.FieldUsername, username, applog.FieldError, err.Error())
		d.render()
		return
	}

	d.endSession()
	d.current = a.Username
	d.sessionID = uuid.NewString()
	d.sorted = false
	d.restartCountdown()
	d.logger.Info("session started",
		applog.FieldOperation, applog.OpLogin,
		applog.FieldUsername, a.Username,
		applog.FieldSessionID, d.sessionID)
	d.render()
}

func (d *Dispatcher) handleTransfer(toUsername string, amount core.Money) {
	if d.current == "" {
		d.logger.Debug("transfer rejected", applog.FieldError, bank.ErrNotLoggedIn.Error())
		d.render()
		return
	}
	if err := d.svc.Transfer(context.Background(), d.current, toUsername, amount); err != nil {
		d.logger.Debug("transfer rejected",
			applog.FieldSessionID, d.sessionID,
			applog.FieldRecipient, toUsername,
			applog.FieldError, err.Error())
		d.render()
		return
	}
	d.restartCountdown()
	d.render()
}

func (d *Dispatcher) handleLoanRequest(amount core.Money) {
	if d.current == "" {
		d.logger.Debug("loan rejected", applog.FieldError, bank.ErrNotLoggedIn.Error())
		d.render()
		return
	}
	if err := d.svc.RequestLoan(context.Background(), d.current, amount); err != nil {
		d.logger.Debug("loan rejected",
			applog.FieldSessionID, d.sessionID,
			applog.FieldAmount, amount.Cents,
			applog.FieldError, err.Error())
		d.render()
		return
	}

	// Approved: credit after the simulated approval delay. The
	// continuation re-enters through the command queue and is
	// cancelled if the session ends first.
	d.restartCountdown()
	user := d.current
	if d.loanTimer != nil {
		d.loanTimer.Stop()
	}
	d.loanTimer = time.AfterFunc(d.cfg.LoanDelay, func() {
		d.post(func() { d.handleLoanGrant(user, amount) })
	})
	d.render()
}

func (d *Dispatcher) handleLoanGrant(username string, amount core.Money) {
	if d.current != username {
		// Session ended between approval and credit.
		return
	}
	if err := d.svc.GrantLoan(context.Background(), username, amount); err != nil {
		d.logger.Error("loan credit failed",
			applog.FieldSessionID, d.sessionID,
			applog.FieldError, err.Error())
		d.render()
		return
	}
	d.restartCountdown()
	d.render()
}

func (d *Dispatcher) handleClose(username string, pin int) {
	if d.current == "" {
		d.logger.Debug("close rejected", applog.FieldError, bank.ErrNotLoggedIn.Error())
		d.render()
		return
	}
	if err := d.svc.CloseAccount(context.Background(), d.current, username, pin); err != nil {
		d.logger.Debug("close rejected",
			applog.FieldSessionID, d.sessionID,
			applog.FieldError, err.Error())
		d.render()
		return
	}
	d.endSession()
	d.render()
}

func (d *Dispatcher) handleTick() {
	_, expired := d.timer.Tick()
	if expired {
		d.logger.Info("session expired",
			applog.FieldOperation, applog.OpLogout,
			applog.FieldSessionID, d.sessionID)
		d.forceLogout()
	}
	d.render()
}

// restartCountdown is cancel-and-restart: the previous ticker is torn
// down so two countdowns can never run at once.
func (d *Dispatcher) restartCountdown() {
	d.timer.Start(d.cfg.BudgetSeconds)
	if d.ticker != nil {
		d.ticker.Stop()
		d.ticker = nil
	}
	if d.cfg.TickInterval > 0 {
		d.ticker = time.NewTicker(d.cfg.TickInterval)
	}
}

// forceLogout clears the session after expiry; the timer already moved
// to Expired on its own.
func (d *Dispatcher) forceLogout() {
	d.cancelPending()
	d.current = ""
	d.sessionID = ""
	d.sorted = false
}

// endSession is the explicit path: logout, closure, shutdown or a new
// login replacing the old session.
func (d *Dispatcher) endSession() {
	d.cancelPending()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.current = ""
	d.sessionID = ""
	d.sorted = false
}

func (d *Dispatcher) cancelPending() {
	if d.loanTimer != nil {
		d.loanTimer.Stop()
		d.loanTimer = nil
	}
	if d.ticker != nil {
		d.ticker.Stop()
		d.ticker = nil
	}
}

func (d *Dispatcher) render() {
	now := d.now()
	if d.current == "" {
		d.renderer.Render(d.views.LoggedOut(now))
		return
	}
	a, err := d.svc.Account(context.Background(), d.current)
	if err != nil {
		// The account disappeared under the session; drop to the
		// pre-login frame.
		d.logger.Error("render lost account", applog.FieldUsername, d.current, applog.FieldError, err.Error())
		d.endSession()
		d.renderer.Render(d.views.LoggedOut(now))
		return
	}
	d.renderer.Render(d.views.Build(a, d.timer.Label(), d.sorted, now))
}
