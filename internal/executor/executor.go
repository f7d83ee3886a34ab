// Package executor walks the target dependency graph of one build session.
//
// The walk is depth-first and synchronous: every dependency of a target runs,
// in declared order, before the target itself, and a target that already ran
// in this session is not run again. A dependency that leads back to a target
// still in progress fails with a CycleDetectedError.
package executor

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/mkr/internal/behavior"
	"github.com/specialistvlad/mkr/internal/capability"
	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/specialistvlad/mkr/internal/target"
)

// State is the executor's lifecycle position.
type State int

const (
	Idle State = iota
	Validating
	Walking
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Walking:
		return "walking"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type mark int

const (
	unvisited mark = iota
	inProgress
	done
)

// RegistryFunc produces the validated registry. The executor calls it once.
type RegistryFunc func(ctx context.Context) (*target.Registry, error)

// Executor runs targets for one session. It is not safe for concurrent use.
type Executor struct {
	stack *behavior.Stack
	load  RegistryFunc

	loaded   bool
	registry *target.Registry
	loadErr  error

	marks map[string]mark
	order []string
	state State
}

// New creates an executor resolving lifecycle handlers through stack.
func New(stack *behavior.Stack, load RegistryFunc) *Executor {
	return &Executor{
		stack: stack,
		load:  load,
		marks: make(map[string]mark),
	}
}

// State returns the current lifecycle state.
func (e *Executor) State() State { return e.state }

// Executed returns the names of the targets run so far, in execution order.
func (e *Executor) Executed() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Registry returns the registry, loading it on first use.
func (e *Executor) Registry(ctx context.Context) (*target.Registry, error) {
	if !e.loaded {
		e.loaded = true
		e.registry, e.loadErr = e.load(ctx)
	}
	return e.registry, e.loadErr
}

// Loaded reports whether the registry was already requested.
func (e *Executor) Loaded() bool { return e.loaded }

// Run executes name after all of its dependencies.
func (e *Executor) Run(ctx context.Context, name string) error {
	e.state = Validating
	reg, err := e.Registry(ctx)
	if err != nil {
		e.state = Failed
		return err
	}

	e.state = Walking
	if _, ok := reg.Get(name); !ok {
		e.state = Failed
		return &target.MissingTargetError{Name: name}
	}
	if err := e.walk(ctx, reg, name, nil); err != nil {
		e.state = Failed
		return err
	}
	e.state = Done
	return nil
}

func (e *Executor) walk(ctx context.Context, reg *target.Registry, name string, path []string) error {
	switch e.marks[name] {
	case done:
		return nil
	case inProgress:
		return &CycleDetectedError{Path: append(slices.Clone(path), name)}
	}

	t, ok := reg.Get(name)
	if !ok {
		return &target.MissingTargetError{Name: name}
	}
	e.marks[name] = inProgress
	path = append(path, name)

	for _, dep := range t.Dependencies {
		if err := e.walk(ctx, reg, dep, path); err != nil {
			// Not started, so a later request walks it again.
			delete(e.marks, name)
			return err
		}
	}
	return e.execute(ctx, t)
}

func (e *Executor) execute(ctx context.Context, t target.Target) error {
	ctx = ctxlog.With(ctx, "target", t.Name)
	logger := ctxlog.FromContext(ctx)
	events := behavior.MustResolve[capability.TargetEvents](e.stack)

	e.marks[t.Name] = done
	e.order = append(e.order, t.Name)

	events.TargetStarting(ctx, t)
	defer events.TargetFinished(ctx, t)

	logger.Debug("Running target action.")
	if err := t.Run(ctx); err != nil {
		logger.Debug("Target action failed.", "error", err)
		return fmt.Errorf("target '%s' failed: %w", t.Name, err)
	}
	return nil
}
