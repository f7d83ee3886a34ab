// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file contains the structural check of the `depends_on` attribute.
//
// Why check depends_on before evaluation?
//
// `depends_on` defines the edges of the target graph. Requiring a list
// literal catches `depends_on = "compile"` at parse time with a pointer to
// the offending expression, instead of a type conversion error later.
package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// validateDependsOn ensures a written depends_on expression is a list
// literal. An omitted attribute is valid.
func validateDependsOn(expr hcl.Expression) hcl.Diagnostics {
	var diags hcl.Diagnostics
	syntaxExpr, ok := expr.(hclsyntax.Expression)
	if !ok {
		return diags
	}
	if _, isTuple := syntaxExpr.(*hclsyntax.TupleConsExpr); !isTuple {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid depends_on value",
			Detail:   "The 'depends_on' attribute must be a list of target names.",
			Subject:  expr.Range().Ptr(),
		})
	}
	return diags
}
