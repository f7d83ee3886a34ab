// Package hcl turns a parsed build file into target definitions.
//
// It evaluates variables, builds the evaluation context every expression is
// resolved against, decodes each action block into its handler's input
// struct and wraps the decoded actions into a target.Action. Problems with
// individual definitions are collected, not returned one at a time, so a
// user sees everything that is wrong with a build file in a single run.
package hcl
