package controller

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrMissingArguments = errors.New("missing parameter arguments")
)

// UnknownParameterError is returned for a dash token no handler accepts.
type UnknownParameterError struct {
	Parameter string
}

func (e *UnknownParameterError) Error() string {
	return "Unknown parameter: " + e.Parameter
}

func (e *UnknownParameterError) Unwrap() error { return ErrUnknownParameter }

// MissingArgumentsError is returned when an option needs more tokens than
// remain on the command line. Count excludes the option itself.
type MissingArgumentsError struct {
	Option string
	Count  int
}

func (e *MissingArgumentsError) Error() string {
	return fmt.Sprintf("Option %s requires %d parameters", e.Option, e.Count)
}

func (e *MissingArgumentsError) Unwrap() error { return ErrMissingArguments }

// BuildFailedError marks a failure that was already reported through the
// error sink.
type BuildFailedError struct {
	Build string
	Err   error
}

func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("Build failed: %s: %v", e.Build, e.Err)
}

func (e *BuildFailedError) Unwrap() error { return e.Err }

// IsUsage reports whether err comes from a malformed command line.
func IsUsage(err error) bool {
	return errors.Is(err, ErrUnknownParameter) || errors.Is(err, ErrMissingArguments)
}

type diagnostic interface {
	Diagnostics() []string
}

// Trace renders the chain of err as report lines, outermost first. Wrapped
// causes are prefixed with "caused by" and aggregated diagnostics are listed
// under the error that carries them.
func Trace(err error) []string {
	var lines []string
	var walk func(err error, depth int)
	walk = func(err error, depth int) {
		indent := strings.Repeat("  ", depth)
		prefix := ""
		if depth > 0 {
			prefix = "caused by "
		}
		msg, _, _ := strings.Cut(err.Error(), "\n")
		lines = append(lines, fmt.Sprintf("%s%s%T: %s", indent, prefix, err, msg))

		if d, ok := err.(diagnostic); ok {
			for _, line := range d.Diagnostics() {
				lines = append(lines, indent+"  - "+line)
			}
		}

		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, next := range u.Unwrap() {
				walk(next, depth+1)
			}
		case interface{ Unwrap() error }:
			if next := u.Unwrap(); next != nil {
				walk(next, depth+1)
			}
		}
	}
	walk(err, 0)
	return lines
}
