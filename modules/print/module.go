package print

import (
	"context"
	"fmt"

	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/specialistvlad/mkr/internal/handlers"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Input defines the arguments of a print action.
type Input struct {
	Message string   `hcl:"message,optional"`
	Lines   []string `hcl:"lines,optional"`
}

// Print writes the message, then each line, to the build's stdout.
func Print(ctx context.Context, env handlers.Env, input *Input) error {
	ctxlog.FromContext(ctx).Debug("Printing message.", "lines", len(input.Lines))

	if input.Message != "" {
		if _, err := fmt.Fprintln(env.Stdout, input.Message); err != nil {
			return err
		}
	}
	for _, line := range input.Lines {
		if _, err := fmt.Fprintln(env.Stdout, line); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the action with the handlers registry.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("print", handlers.Typed(Print))
}
