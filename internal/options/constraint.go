// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ConstraintKind identifies the variant held by a Constraint.
type ConstraintKind int

const (
	// KindExactType accepts values whose dynamic Go type is assignable to a type.
	KindExactType ConstraintKind = iota
	// KindOneOf accepts values equal to a member of a fixed set.
	KindOneOf
	// KindPredicate accepts values for which a function returns true.
	KindPredicate
	// KindCtyType accepts cty values (or Go values) conforming to a cty type.
	KindCtyType
)

// String returns a human-readable kind name.
func (k ConstraintKind) String() string {
	switch k {
	case KindExactType:
		return "exact-type"
	case KindOneOf:
		return "one-of"
	case KindPredicate:
		return "predicate"
	case KindCtyType:
		return "cty-type"
	default:
		return "unknown"
	}
}

// Constraint is a closed, inspectable value constraint. The zero Constraint
// accepts nothing; use one of the constructors.
type Constraint struct {
	kind    ConstraintKind
	typ     reflect.Type
	ctyType cty.Type
	set     []any
	pred    func(any) bool
	desc    string
}

// ExactType returns a constraint accepting values whose dynamic type is
// assignable to t. Interface types accept any implementation.
func ExactType(t reflect.Type) Constraint {
	if t == nil {
		panic("options: ExactType requires a non-nil type")
	}
	return Constraint{kind: KindExactType, typ: t}
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Is is shorthand for ExactType(TypeOf[T]()).
func Is[T any]() Constraint {
	return ExactType(TypeOf[T]())
}

// OneOf returns a constraint accepting exactly the given values.
func OneOf(values ...any) Constraint {
	set := make([]any, len(values))
	copy(set, values)
	return Constraint{kind: KindOneOf, set: set}
}

// Predicate returns a constraint accepting values for which fn returns true.
// The description is used in error messages and diagnostics.
func Predicate(description string, fn func(any) bool) Constraint {
	if fn == nil {
		panic("options: Predicate requires a function")
	}
	return Constraint{kind: KindPredicate, pred: fn, desc: description}
}

// CtyType returns a constraint accepting values conforming to t.
// cty.DynamicPseudoType accepts everything.
func CtyType(t cty.Type) Constraint {
	return Constraint{kind: KindCtyType, ctyType: t}
}

// Kind returns the variant held by c.
func (c Constraint) Kind() ConstraintKind {
	return c.kind
}

// Values returns a copy of the allowed set of a OneOf constraint.
func (c Constraint) Values() []any {
	out := make([]any, len(c.set))
	copy(out, c.set)
	return out
}

// Check reports whether v satisfies the constraint.
func (c Constraint) Check(v any) bool {
	switch c.kind {
	case KindExactType:
		if v == nil || c.typ == nil {
			return false
		}
		return reflect.TypeOf(v).AssignableTo(c.typ)
	case KindOneOf:
		for _, allowed := range c.set {
			if valuesEqual(allowed, v) {
				return true
			}
		}
		return false
	case KindPredicate:
		return c.pred != nil && c.pred(v)
	case KindCtyType:
		return conformsCty(v, c.ctyType)
	default:
		return false
	}
}

// String describes the constraint; for type constraints this is the expected type.
func (c Constraint) String() string {
	switch c.kind {
	case KindExactType:
		if c.typ == nil {
			return "nothing"
		}
		return c.typ.String()
	case KindOneOf:
		parts := make([]string, len(c.set))
		for i, v := range c.set {
			parts[i] = inspect(v)
		}
		return "one of [" + strings.Join(parts, ", ") + "]"
	case KindPredicate:
		return c.desc
	case KindCtyType:
		if c.ctyType == cty.NilType {
			return "nil type"
		}
		return c.ctyType.FriendlyName()
	default:
		return fmt.Sprintf("constraint(%d)", int(c.kind))
	}
}

func valuesEqual(a, b any) bool {
	av, aok := a.(cty.Value)
	bv, bok := b.(cty.Value)
	if aok && bok {
		return av.RawEquals(bv)
	}
	// A Go literal in an allow list still matches an equal cty value.
	if aok {
		return ctyEqualsGo(av, b)
	}
	if bok {
		return ctyEqualsGo(bv, a)
	}
	return reflect.DeepEqual(a, b)
}

func ctyEqualsGo(v cty.Value, g any) bool {
	if g == nil || !v.IsWhollyKnown() {
		return false
	}
	t, err := gocty.ImpliedType(g)
	if err != nil {
		return false
	}
	gv, err := gocty.ToCtyValue(g, t)
	if err != nil {
		return false
	}
	return v.RawEquals(gv)
}

func conformsCty(v any, t cty.Type) bool {
	if t == cty.NilType {
		return false
	}
	if t == cty.DynamicPseudoType {
		return true
	}
	var vt cty.Type
	switch val := v.(type) {
	case nil:
		return false
	case cty.Value:
		if val.IsNull() {
			return false
		}
		vt = val.Type()
	default:
		implied, err := gocty.ImpliedType(v)
		if err != nil {
			return false
		}
		vt = implied
	}
	return len(vt.TestConformance(t)) == 0
}
