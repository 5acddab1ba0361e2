// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/optschema/internal/options"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToCtyValue converts a native Go value into its corresponding cty.Value.
// Durations become their string form; maps and slices of interface values
// are converted element by element into objects and tuples.
func ToCtyValue(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return tv, nil
	case time.Duration:
		return cty.StringVal(tv.String()), nil
	case fmt.Stringer:
		if _, err := gocty.ImpliedType(v); err != nil {
			return cty.StringVal(tv.String()), nil
		}
	case map[string]any:
		if len(tv) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(tv))
		for k, elem := range tv {
			cv, err := ToCtyValue(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("key %q: %w", k, err)
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	case []any:
		if len(tv) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(tv))
		for i, elem := range tv {
			cv, err := ToCtyValue(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = cv
		}
		return cty.TupleVal(elems), nil
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type for %T: %w", v, err)
	}
	return gocty.ToCtyValue(v, ty)
}

// FormatSet renders a finalized option set as HCL attributes in declaration
// order. Values with no cty representation (functions, pointers to live
// objects) are rendered as a quoted Go type name.
func FormatSet(set options.Set) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for _, name := range set.Names() {
		body.SetAttributeValue(name, renderable(set.Value(name)))
	}
	return f.Bytes()
}

// FormatMap is FormatSet for plain mappings; keys are sorted.
func FormatMap(m map[string]any) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for _, k := range keys {
		body.SetAttributeValue(k, renderable(m[k]))
	}
	return f.Bytes()
}

func renderable(v any) cty.Value {
	cv, err := ToCtyValue(v)
	if err != nil || !cv.IsWhollyKnown() {
		return cty.StringVal(fmt.Sprintf("<%s>", reflect.TypeOf(v)))
	}
	return cv
}
