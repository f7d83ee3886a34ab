package controller

import (
	"context"
	"strings"

	"github.com/specialistvlad/mkr/internal/behavior"
	"github.com/specialistvlad/mkr/internal/capability"
	"github.com/specialistvlad/mkr/internal/target"
)

// Targets layers target handling over Root.
type Targets struct {
	behavior.Base
}

// NewTargets returns the target layer handler.
func NewTargets() *Targets { return &Targets{} }

// Run builds the default target when no arguments were given.
func (c *Targets) Run(ctx context.Context, b capability.Build, invoke capability.Invoker, args []string) error {
	if len(args) == 0 {
		args = []string{target.DefaultName}
	}
	return behavior.MustResolveBeneath[capability.Runner](c).Run(ctx, b, invoke, args)
}

// Parameters builds positional targets and handles -targets.
func (c *Targets) Parameters(ctx context.Context, b capability.Build, params []string) (int, error) {
	p := params[0]
	switch {
	case p == "-targets":
		return 0, b.ShowTargets(ctx)
	case !strings.HasPrefix(p, "-"):
		return 0, b.BuildTarget(ctx, p)
	}
	return behavior.MustResolveBeneath[capability.Parameterized](c).Parameters(ctx, b, params)
}

func (c *Targets) TargetStarting(ctx context.Context, t target.Target) {
	behavior.MustAs[capability.Loggers](c).Info().Log(ctx, "Starting target: "+t.Name)
}

func (c *Targets) TargetFinished(context.Context, target.Target) {}
