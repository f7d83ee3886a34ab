package target

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingTarget     = errors.New("missing target")
	ErrMissingDependency = errors.New("missing dependency")
	ErrIllegalDefinition = errors.New("illegal target definition")
)

// MissingTargetError is returned when a requested target is not registered.
type MissingTargetError struct {
	Name string
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("Target '%s' not found", e.Name)
}

func (e *MissingTargetError) Unwrap() error { return ErrMissingTarget }

// MissingDependency is one dangling dependency reference.
type MissingDependency struct {
	Target     string
	Dependency string
}

func (m MissingDependency) String() string {
	return fmt.Sprintf("target %q depends on missing target %q", m.Target, m.Dependency)
}

// MissingDependencyError lists every dangling reference found during
// validation.
type MissingDependencyError struct {
	Missing []MissingDependency
}

func (e *MissingDependencyError) Error() string {
	lines := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		lines[i] = m.String()
	}
	return fmt.Sprintf("registry validation failed:\n- %s", strings.Join(lines, "\n- "))
}

func (e *MissingDependencyError) Unwrap() error { return ErrMissingDependency }

// Diagnostics returns one line per missing dependency.
func (e *MissingDependencyError) Diagnostics() []string {
	out := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		out[i] = m.String()
	}
	return out
}

// IllegalDefinitionError aggregates every problem found while collecting
// target definitions.
type IllegalDefinitionError struct {
	Problems []string
}

func (e *IllegalDefinitionError) Error() string {
	return fmt.Sprintf("illegal target definitions:\n- %s", strings.Join(e.Problems, "\n- "))
}

func (e *IllegalDefinitionError) Unwrap() error { return ErrIllegalDefinition }

// Diagnostics returns the individual problems.
func (e *IllegalDefinitionError) Diagnostics() []string { return e.Problems }
