package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/mkr/internal/behavior"
	"github.com/specialistvlad/mkr/internal/config"
	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/specialistvlad/mkr/internal/handlers"
	"github.com/specialistvlad/mkr/internal/hcl"
	"github.com/specialistvlad/mkr/internal/notify"
	"github.com/specialistvlad/mkr/internal/session"
)

// Options are the dependencies of an App. Zero values select the defaults.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// Modules replace the core action modules when set.
	Modules []handlers.Module
	// Dialer opens notification connections.
	Dialer notify.Dialer
}

// App encapsulates the application's dependencies and configuration.
type App struct {
	config   config.Config
	stdout   io.Writer
	logger   *slog.Logger
	handlers *handlers.Handlers
	loader   *hcl.Loader
	dial     notify.Dialer
}

// New creates an App for cfg. cfg is expected to be validated.
func New(cfg config.Config, opts Options) *App {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = opts.Stdout
	}
	if opts.Dialer == nil {
		opts.Dialer = notify.SocketIO(notify.DialOptions{})
	}
	modules := opts.Modules
	if len(modules) == 0 {
		modules = coreModules
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, opts.Stdout)
	logger.Debug("Logger configured successfully.", "config", cfg.Source)

	h := handlers.New(modules...)
	logger.Debug("All action modules registered.", "count", len(modules), "actions", h.Names())

	return &App{
		config:   cfg,
		stdout:   opts.Stdout,
		logger:   logger,
		handlers: h,
		loader:   hcl.NewLoader(h, opts.Stdout, opts.Stderr),
		dial:     opts.Dialer,
	}
}

// Handlers returns the registered action types. This is primarily for
// testing.
func (a *App) Handlers() *handlers.Handlers {
	return a.handlers
}

// NewSession creates the session for one invocation.
func (a *App) NewSession() (*session.Session, error) {
	return session.New(session.Options{
		BuildFile:  a.config.BuildFile,
		Vars:       a.config.Vars,
		Loader:     a.loader,
		Stdout:     a.stdout,
		Logger:     a.logger,
		Verbose:    a.config.Verbose,
		Extensions: []behavior.Handler{notify.New(a.config.Notify, a.dial)},
	})
}

// Run executes one invocation with the given build arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "args", args)

	s, err := a.NewSession()
	if err != nil {
		return err
	}
	err = s.Run(ctx, args)

	a.logger.Debug("App.Run method finished.", "session", s.ID(), "error", err)
	return err
}
