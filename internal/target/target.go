package target

import (
	"context"
	"slices"
)

// DefaultName is the reserved key of the target run when no target is named.
const DefaultName = "<root>"

// Action is the body of a target.
type Action func(ctx context.Context) error

// Target is a named unit of work with prerequisite target names.
type Target struct {
	Name         string
	Dependencies []string
	Action       Action
	Description  string
	// Source points at the definition, e.g. "Mkrfile.hcl:12,1-16".
	Source string
}

// Run executes the action. A target without an action only groups its
// dependencies.
func (t Target) Run(ctx context.Context) error {
	if t.Action == nil {
		return nil
	}
	return t.Action(ctx)
}

// IsDefault reports whether t is the default target.
func (t Target) IsDefault() bool { return t.Name == DefaultName }

func (t Target) clone() Target {
	t.Dependencies = slices.Clone(t.Dependencies)
	return t
}
