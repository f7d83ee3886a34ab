// Package handlers is the registry of action types a target body can use.
// Each action type pairs an input struct, decoded from the action's block in
// the build file, with the Go function that performs it.
package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"sort"
)

// Env is what an action may rely on besides its input.
type Env struct {
	// BaseDir is the directory of the build file that declared the action.
	BaseDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Path resolves p against BaseDir unless it is absolute.
func (e Env) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.BaseDir, p)
}

// RegisteredHandler holds the compiled Go parts of an action type.
type RegisteredHandler struct {
	Input     func() any
	InputType reflect.Type
	Fn        func(ctx context.Context, env Env, input any) error
}

// Typed builds a RegisteredHandler from a function taking its input struct.
func Typed[T any](fn func(ctx context.Context, env Env, input *T) error) *RegisteredHandler {
	return &RegisteredHandler{
		Input:     func() any { return new(T) },
		InputType: reflect.TypeFor[T](),
		Fn: func(ctx context.Context, env Env, input any) error {
			in, ok := input.(*T)
			if !ok {
				return fmt.Errorf("input has type %T, expected *%s", input, reflect.TypeFor[T]())
			}
			return fn(ctx, env, in)
		},
	}
}

// Module registers one or more action types.
type Module interface {
	Register(h *Handlers)
}

// Handlers holds all the registered action types.
type Handlers struct {
	all map[string]*RegisteredHandler
}

// New creates a registry with the given modules registered.
func New(modules ...Module) *Handlers {
	h := &Handlers{all: make(map[string]*RegisteredHandler)}
	for _, m := range modules {
		m.Register(h)
	}
	return h
}

// RegisterHandler registers an action type. Registering a name twice is a
// programming error and panics.
func (r *Handlers) RegisterHandler(name string, handler *RegisteredHandler) {
	if _, exists := r.all[name]; exists {
		panic(fmt.Sprintf("action handler with name '%s' already registered", name))
	}
	slog.Debug("Registering action handler.", "name", name)
	r.all[name] = handler
}

// Get returns the handler registered under name.
func (r *Handlers) Get(name string) (*RegisteredHandler, bool) {
	h, ok := r.all[name]
	return h, ok
}

// Names returns the registered action types, sorted.
func (r *Handlers) Names() []string {
	names := make([]string, 0, len(r.all))
	for name := range r.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
