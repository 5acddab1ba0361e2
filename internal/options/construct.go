// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Owner is implemented by types embedding Holder. The finalized option set
// can only be bound by Construct.
type Owner interface {
	Options() Set
	bound() bool
	bindOptions(Set)
}

// Holder stores an instance's finalized option set. Embed it in owning types.
type Holder struct {
	set       Set
	finalized bool
}

// Options returns the finalized option set.
func (h *Holder) Options() Set {
	return h.set
}

// Constructed reports whether an option set has been bound.
func (h *Holder) Constructed() bool {
	return h.finalized
}

func (h *Holder) bound() bool {
	return h.finalized
}

func (h *Holder) bindOptions(s Set) {
	h.set = s
	h.finalized = true
}

// Construct finalizes the options of owner. The raw mapping is taken from the
// last argument when it is a map[string]any, a map[string]cty.Value, a Set,
// or a cty object or map value; otherwise the mapping is empty. Arguments are
// copied before processing. When any step fails owner's option set is left
// unbound, although readers of options processed before the failure may
// already have been assigned. An owner is constructed at most once; later
// calls fail with ErrAlreadyConstructed and touch nothing.
func (s *Schema) Construct(owner Owner, args ...any) error {
	if owner.bound() {
		return fmt.Errorf("constructing %s: %w", s.name, ErrAlreadyConstructed)
	}
	raw := lastMapping(args)

	s.logger.Debug("Constructing options.", "schema", s.name, "supplied", len(raw))
	final, err := s.Process(owner, raw)
	if err != nil {
		return fmt.Errorf("constructing %s: %w", s.name, err)
	}

	owner.bindOptions(newSet(s.Names(), final))
	return nil
}

// lastMapping returns a fresh map; callers never share it.
func lastMapping(args []any) map[string]any {
	out := make(map[string]any)
	if len(args) == 0 {
		return out
	}

	switch last := args[len(args)-1].(type) {
	case map[string]any:
		for k, v := range last {
			out[k] = v
		}
	case map[string]cty.Value:
		for k, v := range last {
			out[k] = v
		}
	case Set:
		return last.Map()
	case cty.Value:
		if last.IsNull() || !last.IsKnown() {
			return out
		}
		t := last.Type()
		if !t.IsObjectType() && !t.IsMapType() {
			return out
		}
		for k, v := range last.AsValueMap() {
			out[k] = v
		}
	}
	return out
}
