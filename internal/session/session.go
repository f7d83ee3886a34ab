// Package session defines the object that owns one build invocation: the
// handler stack, the target registry and the executor with its record of
// targets already run. Nothing is shared between sessions, so two
// invocations in one process cannot see each other's state.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/google/uuid"
	"github.com/specialistvlad/mkr/internal/behavior"
	"github.com/specialistvlad/mkr/internal/capability"
	"github.com/specialistvlad/mkr/internal/controller"
	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/specialistvlad/mkr/internal/executor"
	"github.com/specialistvlad/mkr/internal/logging"
	"github.com/specialistvlad/mkr/internal/target"
)

// Loader discovers target definitions in a build file.
type Loader interface {
	Load(ctx context.Context, path string, vars map[string]string) ([]target.Target, error)
}

// Options configures a session.
type Options struct {
	// BuildFile is the path handed to Loader. It can be changed with -file
	// until the registry is loaded.
	BuildFile string
	Vars      map[string]string
	Loader    Loader
	// Targets are registered before any loaded from the build file.
	Targets []target.Target

	Stdout  io.Writer
	Logger  *slog.Logger
	Verbose bool

	// Extensions are installed above the default handlers, in order.
	Extensions []behavior.Handler
}

// Session is one build invocation. It implements capability.Build.
type Session struct {
	id        string
	buildFile string
	vars      map[string]string
	loader    Loader
	static    []target.Target

	stdout io.Writer
	logger *slog.Logger
	stack  *behavior.Stack
	exec   *executor.Executor
}

var _ capability.Build = (*Session)(nil)

// New creates a session with the default handlers and opts.Extensions
// installed.
func New(opts Options) (*Session, error) {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = logging.New(opts.Stdout, logging.FormatText, slog.LevelInfo)
	}

	s := &Session{
		id:        uuid.NewString(),
		buildFile: opts.BuildFile,
		vars:      maps.Clone(opts.Vars),
		loader:    opts.Loader,
		static:    opts.Targets,
		stdout:    opts.Stdout,
	}
	if s.vars == nil {
		s.vars = make(map[string]string)
	}
	s.logger = opts.Logger.With("session", s.id)

	handlers := []behavior.Handler{
		controller.NewRoot(logging.NewSinks(opts.Logger, opts.Verbose)),
		controller.NewTargets(),
		&sourceOptions{session: s},
	}
	stack, err := behavior.NewStack(append(handlers, opts.Extensions...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to compose handler stack: %w", err)
	}
	s.stack = stack
	s.exec = executor.New(stack, s.loadRegistry)
	return s, nil
}

func (s *Session) Name() string {
	if s.buildFile == "" {
		return "mkr"
	}
	return s.buildFile
}

func (s *Session) ID() string        { return s.id }
func (s *Session) Stdout() io.Writer { return s.stdout }

// Stack returns the handler stack.
func (s *Session) Stack() *behavior.Stack { return s.stack }

// Executor returns the session's executor.
func (s *Session) Executor() *executor.Executor { return s.exec }

// Run processes args through the effective Runner.
func (s *Session) Run(ctx context.Context, args []string) error {
	ctx = ctxlog.WithLogger(ctx, s.logger)
	s.logger.Debug("Session run started.", "args", args)

	runner := behavior.MustResolve[capability.Runner](s.stack)
	invoker := behavior.MustResolve[capability.Invoker](s.stack)
	err := runner.Run(ctx, s, invoker, args)

	s.logger.Debug("Session run finished.", "executed", s.exec.Executed(), "state", s.exec.State().String())
	return err
}

// BuildTarget runs name and its dependencies.
func (s *Session) BuildTarget(ctx context.Context, name string) error {
	return s.exec.Run(ctx, name)
}

// ShowTargets lists the registered targets through the effective Lister.
func (s *Session) ShowTargets(ctx context.Context) error {
	reg, err := s.exec.Registry(ctx)
	if err != nil {
		return err
	}
	return s.listTargets(ctx, reg.Targets())
}

func (s *Session) listTargets(ctx context.Context, targets []target.Target) error {
	return behavior.MustResolve[capability.Lister](s.stack).ListTargets(ctx, s, targets)
}

func (s *Session) loadRegistry(ctx context.Context) (*target.Registry, error) {
	loggers := behavior.MustResolve[capability.Loggers](s.stack)
	logger := ctxlog.FromContext(ctx)

	candidates := append([]target.Target(nil), s.static...)
	if s.loader != nil {
		logger.Debug("Loading build file.", "path", s.buildFile)
		loaded, err := s.loader.Load(ctx, s.buildFile, s.vars)
		if err != nil {
			var illegal *target.IllegalDefinitionError
			if errors.As(err, &illegal) {
				for _, problem := range illegal.Problems {
					loggers.Error().Log(ctx, "Illegal target definition: "+problem)
				}
			}
			return nil, err
		}
		candidates = append(candidates, loaded...)
	}

	b := target.NewBuilder()
	for _, t := range candidates {
		b.Add(t)
	}
	for _, n := range b.Notices() {
		loggers.Verbose().Log(ctx, fmt.Sprintf("%s target: %s", n.Kind, n.Name))
	}

	reg, err := b.Build(s.listTargets)
	if err != nil {
		var missing *target.MissingDependencyError
		if errors.As(err, &missing) {
			for _, m := range missing.Missing {
				loggers.Error().Log(ctx, fmt.Sprintf("Missing dependency (%s) for target: %s", m.Dependency, m.Target))
			}
		}
		return nil, err
	}
	logger.Debug("Target registry built.", "targets", reg.Len())
	return reg, nil
}
