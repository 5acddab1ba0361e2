// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import "fmt"

// attributes holds type-level settings declared on a schema. They are
// unrelated to per-instance options: a derived schema inherits the values of
// its base and may override them without affecting the base.
type attributes struct {
	declared map[string]bool
	values   map[string]any
}

func newAttributes() attributes {
	return attributes{declared: make(map[string]bool), values: make(map[string]any)}
}

// Defines declares type-level attribute names.
func (s *Schema) Defines(names ...string) *Schema {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		s.attrs.declared[name] = true
	}
	return s
}

// SetAttr sets a declared type-level attribute. Setting an undeclared
// attribute is a programming error and panics.
func (s *Schema) SetAttr(name string, value any) *Schema {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attrs.declared[name] {
		panic(fmt.Sprintf("options: attribute %q is not defined on schema %s", name, s.name))
	}
	s.attrs.values[name] = value
	return s
}

// Attr returns a type-level attribute. A declared attribute that was never
// set reads as nil; ok is false only for undeclared names.
func (s *Schema) Attr(name string) (value any, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attrs.declared[name] {
		return nil, false
	}
	return s.attrs.values[name], true
}

// inheritAttributes is installed on every root schema as its first extend hook.
func inheritAttributes(base, derived *Schema) {
	base.mu.RLock()
	declared := make([]string, 0, len(base.attrs.declared))
	for name := range base.attrs.declared {
		declared = append(declared, name)
	}
	values := make(map[string]any, len(base.attrs.values))
	for k, v := range base.attrs.values {
		values[k] = v
	}
	base.mu.RUnlock()

	derived.Defines(declared...)
	for k, v := range values {
		derived.SetAttr(k, v)
	}
}
