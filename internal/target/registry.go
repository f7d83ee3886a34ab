package target

import (
	"context"
	"slices"
	"sort"
)

// NoticeKind distinguishes a first registration from a replacement.
type NoticeKind int

const (
	NoticeFound NoticeKind = iota
	NoticeOverriding
)

func (k NoticeKind) String() string {
	if k == NoticeOverriding {
		return "Overriding"
	}
	return "Found"
}

// Notice is a non-fatal record of a registration.
type Notice struct {
	Name string
	Kind NoticeKind
}

// ListFunc renders the registered targets for the synthesized default
// target. It receives every target except the default, sorted by name.
type ListFunc func(ctx context.Context, targets []Target) error

// Builder collects target definitions.
type Builder struct {
	targets map[string]Target
	notices []Notice
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{targets: make(map[string]Target)}
}

// Add registers t. A later definition with the same name replaces the
// earlier one.
func (b *Builder) Add(t Target) *Builder {
	kind := NoticeFound
	if _, exists := b.targets[t.Name]; exists {
		kind = NoticeOverriding
	}
	b.notices = append(b.notices, Notice{Name: t.Name, Kind: kind})
	b.targets[t.Name] = t.clone()
	return b
}

// Notices returns the registration notices in order.
func (b *Builder) Notices() []Notice {
	return slices.Clone(b.notices)
}

// Overrides returns only the notices for replaced definitions.
func (b *Builder) Overrides() []Notice {
	var out []Notice
	for _, n := range b.notices {
		if n.Kind == NoticeOverriding {
			out = append(out, n)
		}
	}
	return out
}

// Build validates the collected targets and returns the registry. When no
// default target was added, one is synthesized that calls list.
func (b *Builder) Build(list ListFunc) (*Registry, error) {
	r := &Registry{targets: make(map[string]Target, len(b.targets)+1)}
	for name, t := range b.targets {
		r.targets[name] = t
	}

	if _, ok := r.targets[DefaultName]; !ok {
		r.targets[DefaultName] = Target{
			Name:        DefaultName,
			Description: "List available targets",
			Action: func(ctx context.Context) error {
				if list == nil {
					return nil
				}
				return list(ctx, r.Targets())
			},
		}
	}

	var missing []MissingDependency
	for _, name := range r.Names() {
		for _, dep := range r.targets[name].Dependencies {
			if _, ok := r.targets[dep]; !ok {
				missing = append(missing, MissingDependency{Target: name, Dependency: dep})
			}
		}
	}
	if len(missing) > 0 {
		return nil, &MissingDependencyError{Missing: missing}
	}
	return r, nil
}

// Build is shorthand for adding every candidate to a new Builder.
func Build(candidates []Target, list ListFunc) (*Registry, error) {
	b := NewBuilder()
	for _, t := range candidates {
		b.Add(t)
	}
	return b.Build(list)
}

// Registry is a validated name to target map. It is read-only once built.
type Registry struct {
	targets map[string]Target
}

// Get returns the target registered under name.
func (r *Registry) Get(name string) (Target, bool) {
	t, ok := r.targets[name]
	if !ok {
		return Target{}, false
	}
	return t.clone(), true
}

// Names returns every registered name, including the default, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Targets returns every target except the default, sorted by name.
func (r *Registry) Targets() []Target {
	out := make([]Target, 0, len(r.targets))
	for _, name := range r.Names() {
		if name == DefaultName {
			continue
		}
		out = append(out, r.targets[name].clone())
	}
	return out
}

// Len returns the number of registered targets, including the default.
func (r *Registry) Len() int { return len(r.targets) }
