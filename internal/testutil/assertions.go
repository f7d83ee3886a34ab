package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// startNotice is how the text logger renders the start of a target.
func startNotice(name string) string {
	return fmt.Sprintf("msg=\"Starting target: %s\"", name)
}

// AssertTargetRan checks the output for the start notice of a target.
func AssertTargetRan(t *testing.T, result *HarnessResult, name string) {
	t.Helper()
	require.True(t,
		strings.Contains(result.Output, startNotice(name)),
		"expected target '%s' to have started", name,
	)
}

// AssertTargetNotRan checks that a target never started.
func AssertTargetNotRan(t *testing.T, result *HarnessResult, name string) {
	t.Helper()
	require.False(t,
		strings.Contains(result.Output, startNotice(name)),
		"expected target '%s' not to have started", name,
	)
}

// AssertTargetOrder checks that the targets started in the given order.
func AssertTargetOrder(t *testing.T, result *HarnessResult, names ...string) {
	t.Helper()
	last := -1
	for _, name := range names {
		idx := strings.Index(result.Output, startNotice(name))
		require.Greater(t, idx, last, "target '%s' did not start in order", name)
		last = idx
	}
}
