package handlers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greetInput struct {
	Name string `hcl:"name"`
}

type greetModule struct{ got *string }

func (m greetModule) Register(h *Handlers) {
	h.RegisterHandler("greet", Typed(func(_ context.Context, _ Env, in *greetInput) error {
		*m.got = in.Name
		return nil
	}))
}

func TestTyped_DecodesInputType(t *testing.T) {
	t.Parallel()

	var got string
	h := New(greetModule{got: &got})

	handler, ok := h.Get("greet")
	require.True(t, ok)
	input := handler.Input()
	input.(*greetInput).Name = "mkr"

	require.NoError(t, handler.Fn(context.Background(), Env{}, input))
	assert.Equal(t, "mkr", got)
	assert.Equal(t, "greetInput", handler.InputType.Name())

	err := handler.Fn(context.Background(), Env{}, "wrong")
	assert.ErrorContains(t, err, "expected *handlers.greetInput")
}

func TestRegisterHandler_DuplicatePanics(t *testing.T) {
	t.Parallel()

	var got string
	h := New(greetModule{got: &got})

	assert.Panics(t, func() { greetModule{got: &got}.Register(h) })
	assert.Equal(t, []string{"greet"}, h.Names())
}

func TestEnv_Path(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	env := Env{BaseDir: base}

	assert.Equal(t, filepath.Join(base, "target", "bin"), env.Path("target/bin"))
	abs := filepath.Join(base, "x")
	assert.Equal(t, abs, env.Path(abs))
	assert.Equal(t, "", env.Path(""))
}
