package integration_tests

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/mkr/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diamondHCL = `
target "init" {
  action "print" { message = "init ran" }
}

target "compile" {
  depends_on = ["init"]
  action "print" { message = "compile ran" }
}

target "test" {
  depends_on = ["init", "compile"]
  action "print" { message = "test ran" }
}

target "dist" {
  depends_on = ["compile", "test"]
  action "print" { message = "dist ran" }
}

default {
  depends_on = ["dist"]
}
`

// Test for: a shared dependency runs once and before everything needing it.
func TestCoreExecution_DiamondRunsEachTargetOnce(t *testing.T) {
	t.Parallel()

	// --- Arrange & Act ---
	result := testutil.RunBuild(t, testutil.Build{
		Files: map[string]string{"Mkrfile.hcl": diamondHCL},
		Args:  []string{"dist"},
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertTargetOrder(t, result, "init", "compile", "test", "dist")
	assert.Equal(t, 1, strings.Count(result.Output, "init ran"))
	assert.Equal(t, 1, strings.Count(result.Output, "compile ran"))
	assert.Contains(t, result.Output, "Build complete")
}

// Test for: targets named in one invocation share the execution record.
func TestCoreExecution_RepeatedTargetsRunOnce(t *testing.T) {
	t.Parallel()

	result := testutil.RunBuild(t, testutil.Build{
		Files: map[string]string{"Mkrfile.hcl": diamondHCL},
		Args:  []string{"compile", "test", "compile"},
	})

	require.NoError(t, result.Err)
	assert.Equal(t, 1, strings.Count(result.Output, "compile ran"))
	assert.Equal(t, 1, strings.Count(result.Output, "test ran"))
	testutil.AssertTargetNotRan(t, result, "dist")
}

// Test for: no arguments builds the declared default target.
func TestCoreExecution_DefaultTarget(t *testing.T) {
	t.Parallel()

	result := testutil.RunBuild(t, testutil.Build{
		Files: map[string]string{"Mkrfile.hcl": diamondHCL},
	})

	require.NoError(t, result.Err)
	testutil.AssertTargetOrder(t, result, "init", "compile", "test", "dist")
}

// Test for: without a default block the default target lists the targets.
func TestCoreExecution_DefaultListsTargets(t *testing.T) {
	t.Parallel()

	result := testutil.RunBuild(t, testutil.Build{
		Files: map[string]string{"Mkrfile.hcl": `
target "compile" {
  description = "Compile sources"
}
`},
	})

	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "Available targets:")
	assert.Contains(t, result.Output, "Compile sources")
	testutil.AssertTargetNotRan(t, result, "compile")
}

// Test for: each invocation gets its own execution record.
func TestCoreExecution_SeparateInvocations(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	first := testutil.RunBuild(t, testutil.Build{
		Files: map[string]string{"Mkrfile.hcl": diamondHCL},
		Args:  []string{"init"},
	})
	require.NoError(t, first.Err)

	// --- Act ---
	s, err := first.App.NewSession()
	require.NoError(t, err)
	err = s.Run(t.Context(), []string{"init"})

	// --- Assert ---
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"init"}, s.Executor().Executed()); diff != "" {
		t.Errorf("executed targets mismatch (-want +got):\n%s", diff)
	}
}
