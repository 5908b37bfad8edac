package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iudanet/dietpanel/internal/dashboard"
	"github.com/iudanet/dietpanel/internal/iocli"
	"github.com/iudanet/dietpanel/internal/session"
	"github.com/iudanet/dietpanel/internal/storage"
)

var (
	// ErrNotAuthenticated returned by dashboard commands without a valid session
	ErrNotAuthenticated = errors.New("not authenticated. Please run 'dietpanel login' first")
	// ErrEmptyCredentials returned when login was ignored because of blank input
	ErrEmptyCredentials = errors.New("email and password are required")
	// ErrUsage returned for malformed command arguments
	ErrUsage = errors.New("invalid arguments")
)

type Cli struct {
	manager *session.Manager
	io      iocli.IO
	logger  *slog.Logger
	plan    *dashboard.PlanEditor
	alerts  *dashboard.AlertRulesForm
	updates chan session.State
}

// New creates the CLI over store. opts are passed to the session manager;
// the CLI registers its own observer for the watch command.
func New(ctx context.Context, store storage.SessionStorage, io iocli.IO, logger *slog.Logger, opts ...session.Option) *Cli {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cli{
		io:      io,
		logger:  logger,
		plan:    dashboard.NewPlanEditor(dashboard.DefaultPlanTemplate()),
		alerts:  dashboard.NewAlertRulesForm(),
		updates: make(chan session.State, 1),
	}

	opts = append([]session.Option{session.WithLogger(logger)}, opts...)
	opts = append(opts, session.WithObserver(c.observe))
	c.manager = session.New(ctx, store, opts...)

	return c
}

// Manager returns the session manager driven by the CLI
func (c *Cli) Manager() *session.Manager {
	return c.manager
}

// observe keeps only the latest state for the watch loop
func (c *Cli) observe(state session.State) {
	for {
		select {
		case c.updates <- state:
			return
		default:
		}
		// Выкидываем устаревшее состояние
		select {
		case <-c.updates:
		default:
		}
	}
}

func (c *Cli) requireSession() error {
	if !c.manager.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}
