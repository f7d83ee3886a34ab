// Package cli is responsible for turning a command line into a build run and
// handling process-level concerns like exit codes. Build options are not
// parsed here: the argument list is handed to the build untouched, where
// options and target names are processed in order.
package cli
