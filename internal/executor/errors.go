package executor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycleDetected is wrapped by CycleDetectedError.
var ErrCycleDetected = errors.New("dependency cycle detected")

// CycleDetectedError reports a dependency chain that returns to a target
// still in progress. Path starts at the first target on the cycle's way and
// ends with the repeated name.
type CycleDetectedError struct {
	Path []string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycleDetected, strings.Join(e.Path, " -> "))
}

func (e *CycleDetectedError) Unwrap() error { return ErrCycleDetected }
