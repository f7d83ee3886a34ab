// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of mkr build files.
// It parses the raw HCL into a strongly-typed, unevaluated model: variables,
// targets and the actions inside each target.
//
// # Core Concepts
//
//   - Buildfile: the root container. It aggregates the variables and targets
//     of one file, or of every .hcl file under a directory.
//
//   - Target: a named unit of work with a depends_on list and an ordered list
//     of actions. A label-less `default` block is the target run when no
//     target is named on the command line.
//
//   - Action: one step of a target's body. Its type label selects a Go
//     handler; its body is decoded later, against that handler's input struct.
//
//   - FSInfo: links every definition back to the file and line it came from.
//
// Why keep expressions unevaluated?
//
// Variables can be overridden from the command line and from the project
// config, so their final values are not known while parsing. The model
// captures the user's intent as hcl.Expression values and the hcl package
// evaluates them once the variable set is complete.
package model
