// Package behavior implements the override chain that every coordination
// concern of a build is resolved through.
//
// A chain is a singly-linked list of handlers ordered from the most recently
// installed (the head) to the earliest (the root). A handler implements any
// subset of the capability interfaces declared in package capability, and a
// lookup for a capability returns the first handler, walking from the head,
// whose dynamic type satisfies it.
//
// # Why a chain instead of a struct of function fields?
//
// Extensions are written independently. One may replace how targets are
// announced while another replaces how parameters are parsed, and neither
// needs to know the other exists. Each handler can also reach the behavior it
// replaced with ResolveBeneath, which makes decoration explicit.
//
// Handlers are installed once, before the first lookup. The first lookup
// seals the stack; later installs fail with ErrStackSealed.
package behavior
