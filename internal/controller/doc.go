// Package controller provides the default handlers of a build stack.
//
// Root sits at the bottom of every stack. It owns the output sinks, runs the
// parameter loop and reports failures. Targets is installed above it and
// adds everything that concerns targets: the default target when no
// arguments are given, -targets, positional target names and the
// "Starting target" announcement.
//
// Both reach the rest of the stack only through behavior lookups, so any
// handler installed above them changes what they call.
package controller
