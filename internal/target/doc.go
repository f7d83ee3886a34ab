// Package target holds the BuildTarget record and the registry a build
// session resolves targets from.
//
// Targets are registered through a Builder, which keeps the last definition
// of a duplicated name and records a Notice for every registration. Build
// then synthesizes the default target when none was declared and validates
// that every dependency names a registered target. Validation is exhaustive:
// all missing dependencies are reported in one MissingDependencyError.
package target
