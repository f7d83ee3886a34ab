package hcl

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/mkr/internal/handlers"
	"github.com/specialistvlad/mkr/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoInput struct {
	Message string `hcl:"message"`
}

type failInput struct{}

type testModule struct{}

func (testModule) Register(h *handlers.Handlers) {
	h.RegisterHandler("echo", handlers.Typed(func(_ context.Context, env handlers.Env, in *echoInput) error {
		_, err := env.Stdout.Write([]byte(in.Message + "\n"))
		return err
	}))
	h.RegisterHandler("fail", handlers.Typed(func(context.Context, handlers.Env, *failInput) error {
		return errors.New("boom")
	}))
}

func writeBuildFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Mkrfile.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func byName(targets []target.Target) map[string]target.Target {
	m := make(map[string]target.Target, len(targets))
	for _, t := range targets {
		m[t.Name] = t
	}
	return m
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	path := writeBuildFile(t, `
variable "greeting" {
  default = "hello"
}

target "compile" {
  description = "Compile sources"
  action "echo" {
    message = upper(var.greeting)
  }
}

target "jar" {
  depends_on = ["compile"]
  action "echo" {
    message = "jar"
  }
}

default {
  depends_on = ["jar"]
}
`)
	var out bytes.Buffer
	loader := NewLoader(handlers.New(testModule{}), &out, nil)

	targets, err := loader.Load(context.Background(), path, nil)

	require.NoError(t, err)
	require.Len(t, targets, 3)
	assert.Equal(t, "compile", targets[0].Name)
	assert.Equal(t, "jar", targets[1].Name)
	assert.Equal(t, target.DefaultName, targets[2].Name)

	all := byName(targets)
	assert.Equal(t, "Compile sources", all["compile"].Description)
	assert.Equal(t, []string{"compile"}, all["jar"].Dependencies)
	assert.Equal(t, []string{"jar"}, all[target.DefaultName].Dependencies)
	assert.Nil(t, all[target.DefaultName].Action)
	assert.Contains(t, all["compile"].Source, path)

	require.NoError(t, all["compile"].Run(context.Background()))
	assert.Equal(t, "HELLO\n", out.String())
}

func TestLoader_Load_VariableOverride(t *testing.T) {
	t.Parallel()

	path := writeBuildFile(t, `
variable "name" {
  default = "world"
}

target "greet" {
  action "echo" {
    message = format("hi %s", var.name)
  }
}
`)
	var out bytes.Buffer
	loader := NewLoader(handlers.New(testModule{}), &out, nil)

	targets, err := loader.Load(context.Background(), path, map[string]string{"name": "mkr"})
	require.NoError(t, err)
	require.NoError(t, targets[0].Run(context.Background()))

	assert.Equal(t, "hi mkr\n", out.String())
}

func TestLoader_Load_ActionError(t *testing.T) {
	t.Parallel()

	path := writeBuildFile(t, `
target "broken" {
  action "fail" {}
}
`)
	loader := NewLoader(handlers.New(testModule{}), nil, nil)

	targets, err := loader.Load(context.Background(), path, nil)
	require.NoError(t, err)
	err = targets[0].Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, "action 'fail' failed: boom", err.Error())
}

func TestLoader_Load_IllegalDefinitions(t *testing.T) {
	t.Parallel()

	path := writeBuildFile(t, `
variable "required" {}

target "-bad" {}

target "unknown" {
  action "nope" {}
}

target "wrongdeps" {
  depends_on = "compile"
}

default {}
default {}
`)
	loader := NewLoader(handlers.New(testModule{}), nil, nil)

	_, err := loader.Load(context.Background(), path, map[string]string{"extra": "1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, target.ErrIllegalDefinition)
	var illegal *target.IllegalDefinitionError
	require.ErrorAs(t, err, &illegal)
	msg := err.Error()
	assert.Contains(t, msg, "Invalid depends_on value")
	assert.Contains(t, msg, `variable "required" has no default and was not set`)
	assert.Contains(t, msg, `variable "extra" is set but not declared`)
	assert.Contains(t, msg, `invalid target name "-bad"`)
	assert.Contains(t, msg, `unknown action type "nope"`)
	assert.Contains(t, msg, "only one default block is allowed")
}

func TestLoader_Load_MissingFile(t *testing.T) {
	t.Parallel()

	loader := NewLoader(handlers.New(), nil, nil)

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, target.ErrIllegalDefinition)
}

func TestLoader_Load_SyntaxError(t *testing.T) {
	t.Parallel()

	path := writeBuildFile(t, `target "x" {`)
	loader := NewLoader(handlers.New(), nil, nil)

	_, err := loader.Load(context.Background(), path, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse build file")
}

func TestLoader_Load_EnvObject(t *testing.T) {
	t.Setenv("MKR_LOADER_TEST", "from-env")
	path := writeBuildFile(t, `
target "show" {
  action "echo" {
    message = env.MKR_LOADER_TEST
  }
}
`)
	var out bytes.Buffer
	loader := NewLoader(handlers.New(testModule{}), &out, nil)

	targets, err := loader.Load(context.Background(), path, nil)
	require.NoError(t, err)
	require.NoError(t, targets[0].Run(context.Background()))

	assert.Equal(t, "from-env\n", out.String())
}
