package behavior

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// Handler is anything that can be linked into a Stack. Implementations embed
// Base, which provides the link method.
type Handler interface {
	link() *Base
}

// Base carries a handler's position in its chain. The zero value is an
// uninstalled handler.
type Base struct {
	stack *Stack
	head  Handler
	next  Handler
}

func (b *Base) link() *Base { return b }

// Stack owns one override chain.
type Stack struct {
	head   Handler
	size   int
	sealed atomic.Bool
}

// NewStack returns a stack with the given handlers installed in order, so the
// last one becomes the head.
func NewStack(handlers ...Handler) (*Stack, error) {
	s := &Stack{}
	for _, h := range handlers {
		if err := s.Install(h); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Install makes h the new head. Every handler already in the chain is
// re-pointed at h.
func (s *Stack) Install(h Handler) error {
	if s.sealed.Load() {
		return fmt.Errorf("%w: cannot install %T", ErrStackSealed, h)
	}
	b := h.link()
	if b.stack != nil {
		return fmt.Errorf("%w: %T", ErrAlreadyInstalled, h)
	}

	for n := s.head; n != nil; n = n.link().next {
		n.link().head = h
	}
	b.stack = s
	b.head = h
	b.next = s.head
	s.head = h
	s.size++
	return nil
}

// Len returns the number of installed handlers.
func (s *Stack) Len() int { return s.size }

// Head returns the most recently installed handler, or nil.
func (s *Stack) Head() Handler { return s.head }

// Sealed reports whether a lookup has already happened on this stack.
func (s *Stack) Sealed() bool { return s.sealed.Load() }

// Resolve returns the most recently installed handler implementing T.
func Resolve[T any](s *Stack) (T, error) {
	s.sealed.Store(true)
	return find[T](s.head)
}

// As returns the handler implementing T as seen from anywhere in h's chain.
// It is how a handler reaches the effective behavior of its own stack.
func As[T any](h Handler) (T, error) {
	b := h.link()
	if b.stack == nil {
		return find[T](h)
	}
	b.stack.sealed.Store(true)
	return find[T](b.head)
}

// ResolveBeneath returns the first handler implementing T below from, which
// is how a handler delegates to the behavior it overrides.
func ResolveBeneath[T any](from Handler) (T, error) {
	b := from.link()
	if b.stack != nil {
		b.stack.sealed.Store(true)
	}
	return find[T](b.next)
}

// MustResolve is Resolve for call sites where a missing capability is a
// composition defect. It panics with a *CapabilityNotFoundError.
func MustResolve[T any](s *Stack) T {
	return must(Resolve[T](s))
}

// MustAs is the panicking form of As.
func MustAs[T any](h Handler) T {
	return must(As[T](h))
}

// MustResolveBeneath is the panicking form of ResolveBeneath.
func MustResolveBeneath[T any](from Handler) T {
	return must(ResolveBeneath[T](from))
}

func find[T any](from Handler) (T, error) {
	for n := from; n != nil; n = n.link().next {
		if c, ok := any(n).(T); ok {
			return c, nil
		}
	}
	var zero T
	return zero, &CapabilityNotFoundError{Capability: reflect.TypeFor[T]().String()}
}

func must[T any](c T, err error) T {
	if err != nil {
		panic(err)
	}
	return c
}
