// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"fmt"
	"strings"
)

// Set is a finalized, immutable option set. The zero Set is empty.
type Set struct {
	names  []string
	values map[string]any
}

// newSet takes ownership of values; order lists the schema's option names.
func newSet(order []string, values map[string]any) Set {
	names := make([]string, 0, len(values))
	for _, name := range order {
		if _, ok := values[name]; ok {
			names = append(names, name)
		}
	}
	return Set{names: names, values: values}
}

// Get returns the value of name and whether it is present.
func (s Set) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Value returns the value of name, or nil when absent.
func (s Set) Value(name string) any {
	return s.values[name]
}

// Has reports whether name is present.
func (s Set) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Len returns the number of present options.
func (s Set) Len() int {
	return len(s.names)
}

// Names returns the present option names in declaration order.
func (s Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Map returns a copy of the option set as a plain map.
func (s Set) Map() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// String renders the set as name=value pairs in declaration order.
func (s Set) String() string {
	parts := make([]string, len(s.names))
	for i, name := range s.names {
		parts[i] = fmt.Sprintf("%s=%s", name, inspect(s.values[name]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
