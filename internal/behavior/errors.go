package behavior

import (
	"errors"
	"fmt"
)

var (
	// ErrCapabilityNotFound is the sentinel wrapped by CapabilityNotFoundError.
	ErrCapabilityNotFound = errors.New("capability not found")
	// ErrAlreadyInstalled is returned when a handler is installed twice.
	ErrAlreadyInstalled = errors.New("handler already installed")
	// ErrStackSealed is returned when installing after the first lookup.
	ErrStackSealed = errors.New("stack is sealed")
)

// CapabilityNotFoundError reports that no handler in a chain implements the
// requested capability. It means the stack was composed incorrectly.
type CapabilityNotFoundError struct {
	Capability string
}

func (e *CapabilityNotFoundError) Error() string {
	return fmt.Sprintf("no handler implements capability %s", e.Capability)
}

func (e *CapabilityNotFoundError) Unwrap() error {
	return ErrCapabilityNotFound
}
