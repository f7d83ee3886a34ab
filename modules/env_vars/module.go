package env_vars

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/specialistvlad/mkr/internal/handlers"
)

// ErrNoSelection is returned when neither names nor prefix is set.
var ErrNoSelection = errors.New("env_vars: one of names or prefix must be set")

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Input selects the variables to print. An empty Names prints every
// variable starting with Prefix. One of the two must be set.
type Input struct {
	Names  []string `hcl:"names,optional"`
	Prefix string   `hcl:"prefix,optional"`
}

// PrintEnvVars writes NAME=value lines for the selected variables, sorted.
// Unset names are printed with an empty value.
func PrintEnvVars(ctx context.Context, env handlers.Env, input *Input) error {
	if len(input.Names) == 0 && input.Prefix == "" {
		return ErrNoSelection
	}
	envMap := make(map[string]string)
	if len(input.Names) > 0 {
		for _, name := range input.Names {
			envMap[name] = os.Getenv(name)
		}
	} else {
		for _, e := range os.Environ() {
			name, value, ok := strings.Cut(e, "=")
			if ok && strings.HasPrefix(name, input.Prefix) {
				envMap[name] = value
			}
		}
	}

	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(env.Stdout, "%s=%s\n", k, envMap[k]); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the action with the handlers registry.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("env_vars", handlers.Typed(PrintEnvVars))
}
