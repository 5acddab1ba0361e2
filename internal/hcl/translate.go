// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/optschema/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// translateInstance evaluates the attributes of one instance block into the
// format-agnostic model. Nested blocks are not allowed inside an instance.
func translateInstance(block *hclInstance, filePath string, evalCtx *hcl.EvalContext) (*model.Instance, hcl.Diagnostics) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	rng := block.Body.MissingItemRange()
	if syntaxBody, ok := block.Body.(interface{ Range() hcl.Range }); ok {
		rng = syntaxBody.Range()
	}

	inst := model.NewInstance(block.Kind, block.Name, model.NewFSInfo(filePath, rng))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(evalCtx)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		inst.Arguments[name] = val
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return inst, diags
}

// evalContext exposes env.* variables and the string helper functions.
func (l *Loader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value, len(l.env))
	for k, v := range l.env {
		env[k] = cty.StringVal(v)
	}
	envVal := cty.EmptyObjectVal
	if len(env) > 0 {
		envVal = cty.ObjectVal(env)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
		Functions: map[string]function.Function{
			"upper":      stdlib.UpperFunc,
			"lower":      stdlib.LowerFunc,
			"trimspace":  stdlib.TrimSpaceFunc,
			"format":     stdlib.FormatFunc,
			"concat":     stdlib.ConcatFunc,
			"jsonencode": stdlib.JSONEncodeFunc,
		},
	}
}
