// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "github.com/hashicorp/hcl/v2"

// Variable is a `variable` block. Default evaluates to null when omitted.
type Variable struct {
	Name          string
	Default       hcl.Expression
	Description   string
	FSInformation *FSInfo
}

type hclVariable struct {
	Name        string         `hcl:"name,label"`
	Default     hcl.Expression `hcl:"default,optional"`
	Description string         `hcl:"description,optional"`
	Body        hcl.Body       `hcl:",body"`
}

func newVariableFromHCL(v *hclVariable) *Variable {
	return &Variable{
		Name:          v.Name,
		Default:       v.Default,
		Description:   v.Description,
		FSInformation: NewFSInfo(v.Body.MissingItemRange()),
	}
}
