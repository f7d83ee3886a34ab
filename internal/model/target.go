// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Target and Action structures.
//
// Why are actions a list of blocks?
//
// A target usually does a few small things in order: create a directory,
// run a compiler, copy the result. Each of those is an `action` block whose
// type label picks the Go handler, so the order in the file is the order of
// execution and the body of each block is validated against exactly one
// handler's input struct.
package model

import (
	"github.com/hashicorp/hcl/v2"
)

// Target is a `target "name"` block or the label-less `default` block.
type Target struct {
	Name          string
	IsDefault     bool
	DependsOn     hcl.Expression
	Description   hcl.Expression
	Actions       []*Action
	FSInformation *FSInfo
}

// Action is an `action "type"` block inside a target.
type Action struct {
	Type          string
	Body          hcl.Body
	FSInformation *FSInfo
}

type hclTarget struct {
	Name        string         `hcl:"name,label"`
	DependsOn   hcl.Expression `hcl:"depends_on,optional"`
	Description hcl.Expression `hcl:"description,optional"`
	Actions     []*hclAction   `hcl:"action,block"`
	Body        hcl.Body       `hcl:",body"`
}

// hclDefault mirrors hclTarget without the name label.
type hclDefault struct {
	DependsOn   hcl.Expression `hcl:"depends_on,optional"`
	Description hcl.Expression `hcl:"description,optional"`
	Actions     []*hclAction   `hcl:"action,block"`
	Body        hcl.Body       `hcl:",body"`
}

type hclAction struct {
	Type string   `hcl:"type,label"`
	Body hcl.Body `hcl:",remain"`
}

func newTargetFromHCL(b *hclTarget) (*Target, hcl.Diagnostics) {
	return newTarget(b.Name, false, b.DependsOn, b.Description, b.Actions, b.Body)
}

func newDefaultFromHCL(b *hclDefault) (*Target, hcl.Diagnostics) {
	return newTarget("", true, b.DependsOn, b.Description, b.Actions, b.Body)
}

func newTarget(name string, isDefault bool, dependsOn, description hcl.Expression, actions []*hclAction, body hcl.Body) (*Target, hcl.Diagnostics) {
	t := &Target{
		Name:          name,
		IsDefault:     isDefault,
		DependsOn:     dependsOn,
		Description:   description,
		FSInformation: NewFSInfo(body.MissingItemRange()),
	}
	for _, a := range actions {
		t.Actions = append(t.Actions, &Action{
			Type:          a.Type,
			Body:          a.Body,
			FSInformation: NewFSInfo(a.Body.MissingItemRange()),
		})
	}
	return t, validateDependsOn(dependsOn)
}
