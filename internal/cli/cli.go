package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/specialistvlad/mkr/internal/app"
	"github.com/specialistvlad/mkr/internal/config"
	"github.com/specialistvlad/mkr/internal/controller"
	"github.com/specialistvlad/mkr/internal/notify"
	"github.com/spf13/cobra"
)

// Exit codes of the mkr process.
const (
	ExitSuccess     = 0
	ExitBuildFailed = 1
	ExitUsage       = 2
)

// ExitError is a custom error type that includes a specific exit code. An
// empty Message means the failure was already reported.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// Options are the process facilities a command runs with.
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Version string
	// Dir is where config files are looked up. Defaults to the working
	// directory.
	Dir    string
	Getenv func(string) string
	Dialer notify.Dialer
}

// NewRootCommand creates the mkr command.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	cmd := &cobra.Command{
		Use:   "mkr [options] [target ...]",
		Short: "Run build targets declared in an HCL build file",
		// Options like -file and -var belong to the build and are processed
		// in order with the target names.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)
	return cmd
}

// Execute runs the mkr command with args.
func Execute(ctx context.Context, args []string, opts Options) error {
	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func run(ctx context.Context, opts Options, args []string) error {
	args = normalize(args)
	if slices.Contains(args, "-version") {
		_, err := fmt.Fprintf(opts.Stdout, "mkr version %s\n", opts.Version)
		return err
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
		}
		dir = wd
	}
	cfg, err := config.Load(dir, opts.Getenv)
	if err != nil {
		return &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
	}

	a := app.New(cfg, app.Options{
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
		Dialer: opts.Dialer,
	})
	return exitError(a.Run(ctx, args))
}

// exitError maps a build error to the process exit code. Build errors are
// reported by the build itself.
func exitError(err error) error {
	switch {
	case err == nil:
		return nil
	case controller.IsUsage(err):
		return &ExitError{Code: ExitUsage, Err: err}
	case errors.Is(err, context.Canceled):
		return &ExitError{Code: ExitBuildFailed, Message: "build interrupted", Err: err}
	}
	return &ExitError{Code: ExitBuildFailed, Err: err}
}

// normalize accepts the GNU spelling of the options handled outside the
// build.
func normalize(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		switch a {
		case "--help":
			a = "-help"
		case "--version":
			a = "-version"
		}
		out[i] = a
	}
	return out
}
