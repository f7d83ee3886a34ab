// Package app wires mkr together: it builds the logger from the startup
// configuration, registers the action modules, and runs each invocation in
// a fresh session. It is decoupled from any entrypoint so tests can drive it
// directly.
package app
