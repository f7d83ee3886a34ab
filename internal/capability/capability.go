// Package capability declares the contracts handlers in a behavior.Stack can
// implement. A lookup is by interface type, for example
// behavior.Resolve[capability.TargetEvents](stack).
package capability

import (
	"context"
	"io"

	"github.com/specialistvlad/mkr/internal/logging"
	"github.com/specialistvlad/mkr/internal/target"
)

// Build is the per-invocation view handlers act on.
type Build interface {
	// Name identifies the build in reports, usually the build file path.
	Name() string
	// ID is the unique session identifier.
	ID() string
	// Stdout receives listings and action output.
	Stdout() io.Writer
	// BuildTarget runs a target and its dependencies, each at most once per
	// invocation.
	BuildTarget(ctx context.Context, name string) error
	// ShowTargets lists the registered targets without building anything.
	ShowTargets(ctx context.Context) error
}

// Loggers provides the build's output sinks.
type Loggers interface {
	Error() *logging.Sink
	Warn() *logging.Sink
	Info() *logging.Sink
	Verbose() *logging.Sink
}

// Runner drives a whole invocation. It is expected to call invoke and to
// report a failure before returning it.
type Runner interface {
	Run(ctx context.Context, b Build, invoke Invoker, args []string) error
}

// Invoker processes the argument list of an invocation.
type Invoker interface {
	Invoke(ctx context.Context, b Build, args []string) error
}

// BuildEvents is notified around a successful invocation.
type BuildEvents interface {
	BuildStarting(ctx context.Context, b Build)
	BuildFinished(ctx context.Context, b Build)
}

// TargetEvents is notified around every executed target. TargetFinished is
// called even when the action fails.
type TargetEvents interface {
	TargetStarting(ctx context.Context, t target.Target)
	TargetFinished(ctx context.Context, t target.Target)
}

// Parameterized consumes command line parameters. params holds the tokens
// offered, starting with the one to handle. The return value is the number
// of tokens the handler needs: 0 when it consumed what it was offered, or a
// larger count to be offered that many tokens instead.
type Parameterized interface {
	Parameters(ctx context.Context, b Build, params []string) (int, error)
}

// Lister renders the list of targets.
type Lister interface {
	ListTargets(ctx context.Context, b Build, targets []target.Target) error
}
