package print

import (
	"bytes"
	"context"
	"testing"

	"github.com/specialistvlad/mkr/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := Print(context.Background(), handlers.Env{Stdout: &out}, &Input{
		Message: "Completed default build",
		Lines:   []string{"a", "b"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Completed default build\na\nb\n", out.String())
}

func TestRegister(t *testing.T) {
	t.Parallel()

	h := handlers.New(&Module{})
	_, ok := h.Get("print")
	assert.True(t, ok)
}
