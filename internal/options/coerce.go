// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"fmt"
	"reflect"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Coerce adapts fn into a Coercer. Values that are not a T pass through
// unchanged and are left to the type check.
func Coerce[T any](fn func(T) T) Coercer {
	return func(v any) (any, error) {
		t, ok := v.(T)
		if !ok {
			return v, nil
		}
		return fn(t), nil
	}
}

// Chain composes coercers left to right into a single coercion step.
func Chain(coercers ...Coercer) Coercer {
	return func(v any) (any, error) {
		var err error
		for _, c := range coercers {
			if v, err = c(v); err != nil {
				return nil, err
			}
		}
		return v, nil
	}
}

// CtyTo decodes cty values into T using gocty. Values that are not cty
// values pass through unchanged, so Go callers and HCL-supplied arguments can
// share one schema. A null cty value becomes nil.
func CtyTo[T any]() Coercer {
	return func(v any) (any, error) {
		cv, ok := v.(cty.Value)
		if !ok {
			return v, nil
		}
		if cv.IsNull() {
			return nil, nil
		}
		if !cv.IsWhollyKnown() {
			return nil, fmt.Errorf("value is not known")
		}
		var out T
		// Object and tuple literals only decode into Go maps and slices
		// once converted to the collection type T implies.
		if TypeOf[T]().Kind() != reflect.Interface {
			if want, err := gocty.ImpliedType(out); err == nil {
				if converted, err := convert.Convert(cv, want); err == nil {
					cv = converted
				}
			}
		}
		if err := gocty.FromCtyValue(cv, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// CtyConvert converts cty values to t with the cty conversion rules (for
// example the string "3" to the number 3). Other values pass through.
func CtyConvert(t cty.Type) Coercer {
	return func(v any) (any, error) {
		cv, ok := v.(cty.Value)
		if !ok {
			return v, nil
		}
		converted, err := convert.Convert(cv, t)
		if err != nil {
			return nil, err
		}
		return converted, nil
	}
}

// ParseDuration turns strings such as "1m30s" into a time.Duration. Other
// values pass through.
func ParseDuration(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	return d, nil
}
