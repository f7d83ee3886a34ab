package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/mkr/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, out, []string{"--version"})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "mkr version dev\n", out.String())
}

func TestRun_UnknownOption(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, out, []string{"-this-is-not-a-valid-option"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "run() should return an *cli.ExitError")
	require.Equal(t, cli.ExitUsage, exitErr.Code)
	require.Contains(t, out.String(), "Unknown parameter: -this-is-not-a-valid-option")
}
