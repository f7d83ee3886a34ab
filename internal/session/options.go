package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/mkr/internal/behavior"
	"github.com/specialistvlad/mkr/internal/capability"
)

// sourceOptions handles the parameters that choose what gets loaded. They
// must precede the first target.
type sourceOptions struct {
	behavior.Base
	session *Session
}

func (o *sourceOptions) Parameters(ctx context.Context, b capability.Build, params []string) (int, error) {
	switch params[0] {
	case "-file", "-var":
	default:
		return behavior.MustResolveBeneath[capability.Parameterized](o).Parameters(ctx, b, params)
	}
	if len(params) < 2 {
		return 2, nil
	}
	if o.session.exec.Loaded() {
		return 0, fmt.Errorf("option %s must come before the first target", params[0])
	}

	verbose := behavior.MustAs[capability.Loggers](o).Verbose()
	switch params[0] {
	case "-file":
		o.session.buildFile = params[1]
		verbose.Log(ctx, "Build file set to "+params[1])
	case "-var":
		name, value, ok := strings.Cut(params[1], "=")
		if !ok || name == "" {
			return 0, fmt.Errorf("option -var expects NAME=VALUE, got %q", params[1])
		}
		o.session.vars[name] = value
		verbose.Log(ctx, "Variable "+name+" overridden")
	}
	return 0, nil
}
