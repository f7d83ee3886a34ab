package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, files map[string]string) (Options, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	var out bytes.Buffer
	return Options{
		Stdout:  &out,
		Stderr:  &out,
		Dir:     dir,
		Version: "1.2.3",
		Getenv:  func(string) string { return "" },
	}, &out
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T", err)
	return exitErr.Code
}

func TestExecute_Version(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"-version", "--version"} {
		opts, out := setup(t, nil)

		err := Execute(context.Background(), []string{arg}, opts)

		require.NoError(t, err)
		assert.Equal(t, "mkr version 1.2.3\n", out.String())
	}
}

func TestExecute_Help(t *testing.T) {
	t.Parallel()

	opts, out := setup(t, map[string]string{"Mkrfile.hcl": `target "a" {}`})

	err := Execute(context.Background(), []string{"--help"}, opts)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-targets")
}

func TestExecute_RunsBuildFileFromConfig(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	opts, out := setup(t, map[string]string{
		"mkr.yaml": "build_file: build.hcl\n",
		"build.hcl": `
target "hello" {
  action "print" { message = "hello from build.hcl" }
}
`,
	})

	// --- Act ---
	err := Execute(context.Background(), []string{"hello"}, opts)

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "hello from build.hcl")
}

func TestExecute_ExitCodes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		files    map[string]string
		args     []string
		wantCode int
	}{
		{
			name:     "success",
			files:    map[string]string{"Mkrfile.hcl": `target "a" {}`},
			args:     []string{"a"},
			wantCode: ExitSuccess,
		},
		{
			name:     "missing target",
			files:    map[string]string{"Mkrfile.hcl": `target "a" {}`},
			args:     []string{"b"},
			wantCode: ExitBuildFailed,
		},
		{
			name:     "unknown option",
			files:    map[string]string{"Mkrfile.hcl": `target "a" {}`},
			args:     []string{"-bogus"},
			wantCode: ExitUsage,
		},
		{
			name:     "missing option argument",
			files:    map[string]string{"Mkrfile.hcl": `target "a" {}`},
			args:     []string{"-file"},
			wantCode: ExitUsage,
		},
		{
			name:     "invalid config",
			files:    map[string]string{"mkr.yaml": "log_format: xml\n"},
			args:     []string{"a"},
			wantCode: ExitUsage,
		},
		{
			name:     "missing build file",
			args:     []string{"a"},
			wantCode: ExitBuildFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opts, _ := setup(t, tc.files)

			err := Execute(context.Background(), tc.args, opts)

			assert.Equal(t, tc.wantCode, exitCode(t, err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	assert.Equal(t, "boom", (&ExitError{Code: 1, Err: cause}).Error())
	assert.Equal(t, "bad", (&ExitError{Code: 2, Message: "bad", Err: cause}).Error())
	assert.ErrorIs(t, &ExitError{Err: cause}, cause)
}
