package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/mkr/internal/app"
	"github.com/specialistvlad/mkr/internal/config"
	"github.com/specialistvlad/mkr/internal/handlers"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcome of a build run.
type HarnessResult struct {
	Output string
	Err    error
	Dir    string
	App    *app.App
}

// Build describes a harness run.
type Build struct {
	// Files are written below a temporary directory, keyed by relative path.
	// The build file is expected at "Mkrfile.hcl".
	Files   map[string]string
	Args    []string
	Verbose bool
	Vars    map[string]string
	// Modules replace the core modules when set.
	Modules []handlers.Module
}

// RunBuild runs one invocation against files written to a temporary
// directory. Set MKR_TEST_LOGS=true to see the output of every run.
func RunBuild(t *testing.T, b Build) *HarnessResult {
	t.Helper()
	return RunBuildWithContext(context.Background(), t, b)
}

// RunBuildWithContext is RunBuild with a caller supplied context.
func RunBuildWithContext(ctx context.Context, t *testing.T, b Build) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range b.Files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.BuildFile = filepath.Join(dir, config.DefaultBuildFile)
	cfg.Verbose = b.Verbose
	for k, v := range b.Vars {
		cfg.Vars[k] = v
	}
	require.NoError(t, cfg.Validate())

	out := &SafeBuffer{}
	testApp := app.New(cfg, app.Options{Stdout: out, Modules: b.Modules})
	err := testApp.Run(ctx, b.Args)

	if os.Getenv("MKR_TEST_LOGS") == "true" {
		t.Logf("--- Full output for %s ---\n%s", t.Name(), out.String())
	}
	return &HarnessResult{
		Output: out.String(),
		Err:    err,
		Dir:    dir,
		App:    testApp,
	}
}
