// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/optschema/internal/ctxlog"
	"github.com/specialistvlad/optschema/internal/options"
)

// ValidateRegistry checks that every registered kind is complete: it has a
// schema, a constructor, and at least one declared option.
// Options without any type constraint are allowed, but reported as warnings
// because they disable static checking of supplied values.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, kind := range r.Kinds() {
		if kind.Schema == nil {
			errs = append(errs, fmt.Sprintf("kind '%s': no option schema registered", kind.Name))
			continue
		}
		if kind.New == nil {
			errs = append(errs, fmt.Sprintf("kind '%s': no constructor registered", kind.Name))
		}

		opts := kind.Schema.Options()
		if len(opts) == 0 {
			errs = append(errs, fmt.Sprintf("kind '%s': schema %s declares no options", kind.Name, kind.Schema.Name()))
			continue
		}

		for _, opt := range opts {
			if !hasTypeCheck(opt) {
				logger.Warn("Option has no type constraint, which disables static type checking.", "kind", kind.Name, "option", opt.Name())
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func hasTypeCheck(opt *options.Option) bool {
	for _, step := range opt.Steps() {
		if step.Kind() == options.StepTypeCheck {
			return true
		}
	}
	return false
}
