// Package command provides the exec action, which runs an external program
// and fails the target when it exits with a nonzero status.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/specialistvlad/mkr/internal/handlers"
)

// Input defines the arguments of an exec action.
type Input struct {
	Command []string          `hcl:"command"`
	Dir     string            `hcl:"dir,optional"`
	Env     map[string]string `hcl:"env,optional"`
}

// Runner abstracts process execution so tests need not spawn processes.
type Runner interface {
	Run(ctx context.Context, spec Spec) (int, error)
}

// Spec describes one process to run.
type Spec struct {
	Name   string
	Args   []string
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// ExecRunner runs processes on the local host with os/exec.
type ExecRunner struct{}

// Run starts the process and waits for it. The returned code is the exit
// status, 127 when the program could not be started.
func (ExecRunner) Run(ctx context.Context, spec Spec) (int, error) {
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), err
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return 127, err
	}
	return 1, err
}

// ExitError is returned when the program exits with a nonzero status.
type ExitError struct {
	Command string
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s failed, exit code: %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Module implements the handlers.Module interface for this package.
type Module struct {
	Runner Runner
}

// Exec builds the handler function around runner.
func Exec(runner Runner) func(ctx context.Context, env handlers.Env, input *Input) error {
	return func(ctx context.Context, env handlers.Env, input *Input) error {
		if len(input.Command) == 0 {
			return fmt.Errorf("command must not be empty")
		}
		logger := ctxlog.FromContext(ctx).With("action", "exec", "command", input.Command[0])

		dir := env.BaseDir
		if input.Dir != "" {
			dir = env.Path(input.Dir)
		}
		spec := Spec{
			Name:   input.Command[0],
			Args:   input.Command[1:],
			Dir:    dir,
			Env:    environ(input.Env),
			Stdout: env.Stdout,
			Stderr: env.Stderr,
		}

		logger.Debug("Starting process.", "args", spec.Args, "dir", dir)
		code, err := runner.Run(ctx, spec)
		if err != nil || code != 0 {
			return &ExitError{Command: input.Command[0], Code: code, Err: err}
		}
		logger.Debug("Process finished.")
		return nil
	}
}

// environ returns the process environment with extra applied on top, in a
// stable order.
func environ(extra map[string]string) []string {
	env := os.Environ()
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}

// Register registers the action with the handlers registry.
func (m *Module) Register(h *handlers.Handlers) {
	runner := m.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	h.RegisterHandler("exec", handlers.Typed(Exec(runner)))
}
