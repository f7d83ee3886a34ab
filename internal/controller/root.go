package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/specialistvlad/mkr/internal/behavior"
	"github.com/specialistvlad/mkr/internal/capability"
	"github.com/specialistvlad/mkr/internal/logging"
	"github.com/specialistvlad/mkr/internal/target"
)

const usage = `mkr - run build targets declared in an HCL build file.

Usage:
  mkr [options] [target ...]

With no arguments the default target runs. Unless the build file declares
one, it lists the available targets.

Options:
  -targets           List available targets.
  -verbose           Enable verbose output.
  -file PATH         Use PATH as the build file (default Mkrfile.hcl).
  -var NAME=VALUE    Override a build file variable.
  -notify URL        Send build events to a socket.io endpoint.
  -version           Print the version and exit.
  -help              Show this help.
`

// Root is the bottom handler of a build stack.
type Root struct {
	behavior.Base
	sinks *logging.Sinks
}

// NewRoot creates the root handler writing through sinks.
func NewRoot(sinks *logging.Sinks) *Root {
	return &Root{sinks: sinks}
}

func (r *Root) Error() *logging.Sink   { return r.sinks.Error }
func (r *Root) Warn() *logging.Sink    { return r.sinks.Warn }
func (r *Root) Info() *logging.Sink    { return r.sinks.Info }
func (r *Root) Verbose() *logging.Sink { return r.sinks.Verbose }

// Run calls invoke and reports its failure. With verbose output enabled the
// whole error chain is reported too.
func (r *Root) Run(ctx context.Context, b capability.Build, invoke capability.Invoker, args []string) error {
	err := invoke.Invoke(ctx, b, args)
	if err == nil {
		return nil
	}

	loggers := behavior.MustAs[capability.Loggers](r)
	loggers.Error().Log(ctx, fmt.Sprintf("Build failed: %s: %v", b.Name(), err))
	if loggers.Verbose().Enabled() {
		for _, line := range Trace(err) {
			loggers.Error().Log(ctx, line)
		}
	}
	return &BuildFailedError{Build: b.Name(), Err: err}
}

// Invoke processes args between the build events.
func (r *Root) Invoke(ctx context.Context, b capability.Build, args []string) error {
	events := behavior.MustAs[capability.BuildEvents](r)
	events.BuildStarting(ctx, b)
	if err := r.processParameters(ctx, b, args); err != nil {
		return err
	}
	events.BuildFinished(ctx, b)
	return nil
}

// processParameters offers the arguments to the effective Parameterized
// handler. A handler asking for n tokens is offered the next n; one that
// returns 0 consumed them.
func (r *Root) processParameters(ctx context.Context, b capability.Build, args []string) error {
	loggers := behavior.MustAs[capability.Loggers](r)
	params := behavior.MustAs[capability.Parameterized](r)

	wanted := 1
	for len(args) > 0 {
		if len(args) < wanted {
			return &MissingArgumentsError{Option: args[0], Count: wanted - 1}
		}
		sub := args[:wanted]
		loggers.Verbose().Log(ctx, fmt.Sprintf("Processing parameters: %v", sub))

		next, err := params.Parameters(ctx, b, sub)
		if err != nil {
			return err
		}
		switch {
		case next == 0:
			args = args[wanted:]
			wanted = 1
		case next <= wanted:
			return fmt.Errorf("parameter %s: handler asked for %d tokens after being offered %d", sub[0], next, wanted)
		default:
			wanted = next
		}
	}
	return nil
}

func (r *Root) BuildStarting(ctx context.Context, b capability.Build) {
	behavior.MustAs[capability.Loggers](r).Info().Log(ctx, "Build file: "+b.Name())
}

func (r *Root) BuildFinished(ctx context.Context, b capability.Build) {
	behavior.MustAs[capability.Loggers](r).Info().Log(ctx, "Build complete")
}

// Parameters handles the options every build understands.
func (r *Root) Parameters(ctx context.Context, b capability.Build, params []string) (int, error) {
	switch params[0] {
	case "-verbose":
		behavior.MustAs[capability.Loggers](r).Verbose().SetEnabled(true).Log(ctx, "Verbose output enabled")
		return 0, nil
	case "-help", "-h":
		_, err := io.WriteString(b.Stdout(), usage)
		return 0, err
	}
	return 0, &UnknownParameterError{Parameter: params[0]}
}

// ListTargets prints a table of targets to the build's stdout.
func (r *Root) ListTargets(ctx context.Context, b capability.Build, targets []target.Target) error {
	behavior.MustAs[capability.Loggers](r).Info().Log(ctx, "Available targets:", "count", len(targets))

	tw := table.NewWriter()
	tw.SetOutputMirror(b.Stdout())
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"TARGET", "DEPENDS ON", "DESCRIPTION"})
	for _, t := range targets {
		tw.AppendRow(table.Row{t.Name, strings.Join(t.Dependencies, ", "), t.Description})
	}
	tw.Render()
	return nil
}

// Usage returns the command line help text.
func Usage() string { return usage }
