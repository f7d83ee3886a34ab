package env_vars

import (
	"bytes"
	"context"
	"testing"

	"github.com/specialistvlad/mkr/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintEnvVars_ByName(t *testing.T) {
	t.Setenv("MKR_TEST_B", "2")
	t.Setenv("MKR_TEST_A", "1")

	var out bytes.Buffer
	err := PrintEnvVars(context.Background(), handlers.Env{Stdout: &out}, &Input{
		Names: []string{"MKR_TEST_B", "MKR_TEST_A", "MKR_TEST_UNSET"},
	})

	require.NoError(t, err)
	assert.Equal(t, "MKR_TEST_A=1\nMKR_TEST_B=2\nMKR_TEST_UNSET=\n", out.String())
}

func TestPrintEnvVars_ByPrefix(t *testing.T) {
	t.Setenv("MKR_PREFIX_TEST_X", "x")

	var out bytes.Buffer
	err := PrintEnvVars(context.Background(), handlers.Env{Stdout: &out}, &Input{Prefix: "MKR_PREFIX_TEST_"})

	require.NoError(t, err)
	assert.Equal(t, "MKR_PREFIX_TEST_X=x\n", out.String())
}

func TestPrintEnvVars_RequiresSelection(t *testing.T) {
	t.Setenv("MKR_SECRET_TOKEN", "hunter2")

	var out bytes.Buffer
	err := PrintEnvVars(context.Background(), handlers.Env{Stdout: &out}, &Input{})

	require.ErrorIs(t, err, ErrNoSelection)
	assert.Empty(t, out.String())
}
