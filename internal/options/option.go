// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Option is the declared behavior of one named option: its identity and the
// ordered pipeline of steps derived from its settings. An Option is immutable
// once built and may be shared between a schema and its derived schemas.
type Option struct {
	name        string
	description string
	hasReader   bool
	steps       []Step
}

// Setting configures an Option under construction.
type Setting func(*optionConfig)

type optionConfig struct {
	coercer     Coercer
	hasDefault  bool
	defaultVal  any
	defaultFn   DefaultFunc
	typ         *Constraint
	allow       *Constraint
	reader      ReaderFunc
	description string
}

// NewOption builds an option from its settings. Steps are always appended in
// the order coerce, default, type check, value check, reader; the order in
// which settings are passed does not matter. An option without settings has
// an empty pipeline and passes its value through unchanged.
func NewOption(name string, settings ...Setting) *Option {
	if name == "" {
		panic("options: option name must not be empty")
	}

	cfg := &optionConfig{}
	for _, apply := range settings {
		apply(cfg)
	}

	opt := &Option{name: name, description: cfg.description}

	if cfg.coercer != nil {
		opt.steps = append(opt.steps, Step{kind: StepCoerce, option: name, coerce: cfg.coercer})
	}
	if cfg.hasDefault {
		if cfg.defaultFn != nil {
			opt.steps = append(opt.steps, Step{kind: StepDefaultFromOwner, option: name, defaultFn: cfg.defaultFn})
		} else {
			opt.steps = append(opt.steps, Step{kind: StepDefaultValue, option: name, value: cfg.defaultVal})
		}
	}
	if cfg.typ != nil {
		opt.steps = append(opt.steps, Step{kind: StepTypeCheck, option: name, constraint: *cfg.typ})
	}
	if cfg.allow != nil {
		opt.steps = append(opt.steps, Step{kind: StepValueCheck, option: name, constraint: *cfg.allow})
	}
	if cfg.reader != nil {
		opt.hasReader = true
		opt.steps = append(opt.steps, Step{kind: StepAssignReader, option: name, reader: cfg.reader})
	}

	return opt
}

// Name returns the option name.
func (o *Option) Name() string { return o.name }

// Description returns the optional human-readable description.
func (o *Option) Description() string { return o.description }

// HasReader reports whether a reader slot is populated for this option.
func (o *Option) HasReader() bool { return o.hasReader }

// Steps returns a copy of the option's pipeline.
func (o *Option) Steps() []Step {
	out := make([]Step, len(o.steps))
	copy(out, o.steps)
	return out
}

// Transform threads m through the option's pipeline in place.
func (o *Option) Transform(owner any, m map[string]any) error {
	for _, step := range o.steps {
		if err := step.apply(owner, m); err != nil {
			return err
		}
	}
	return nil
}

// WithCoercer converts a supplied value before any check runs.
func WithCoercer(fn Coercer) Setting {
	return func(c *optionConfig) { c.coercer = fn }
}

// WithDefault sets the value used when the option is not supplied. A
// function of the form func(any) (any, error) or func(any) any is called
// with the owner like WithDefaultFunc. Any other function value panics.
func WithDefault(v any) Setting {
	switch fn := v.(type) {
	case DefaultFunc:
		return WithDefaultFunc(fn)
	case func(any) (any, error):
		return WithDefaultFunc(fn)
	case func(any) any:
		return WithDefaultFunc(func(owner any) (any, error) { return fn(owner), nil })
	}
	if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
		panic(fmt.Sprintf("options: unsupported default function %T, use WithDefaultFunc or DefaultFrom", v))
	}
	return func(c *optionConfig) {
		c.hasDefault = true
		c.defaultVal = v
		c.defaultFn = nil
	}
}

// WithDefaultFunc computes the default from the instance under construction.
// The function runs once per construction, after options declared earlier
// have been processed and their readers assigned.
func WithDefaultFunc(fn DefaultFunc) Setting {
	return func(c *optionConfig) {
		c.hasDefault = true
		c.defaultVal = nil
		c.defaultFn = fn
	}
}

// DefaultFrom is a typed WithDefaultFunc.
func DefaultFrom[O any, T any](fn func(O) T) Setting {
	return WithDefaultFunc(func(owner any) (any, error) {
		o, ok := ownerAs[O](owner)
		if !ok {
			return nil, fmt.Errorf("%w: default expects %s, got %T", ErrOwnerMismatch, TypeOf[O](), owner)
		}
		return fn(o), nil
	})
}

// WithType restricts the option to values satisfying c. Failures report the
// constraint as the expected type.
func WithType(c Constraint) Setting {
	return func(cfg *optionConfig) { cfg.typ = &c }
}

// WithAllow restricts the option to the given values.
func WithAllow(values ...any) Setting {
	return WithAllowed(OneOf(values...))
}

// WithAllowed restricts the option to values satisfying c.
func WithAllowed(c Constraint) Setting {
	return func(cfg *optionConfig) { cfg.allow = &c }
}

// WithReader stores the finalized value through fn on every construction
// where the option ends up present.
func WithReader(fn ReaderFunc) Setting {
	return func(c *optionConfig) { c.reader = fn }
}

// Reader is a typed WithReader. The owner may be O itself or a struct that
// embeds O, so readers declared for a base type keep working for types that
// embed it. A nil value stores the zero T.
func Reader[O any, T any](set func(O, T)) Setting {
	return WithReader(func(owner, value any) error {
		o, ok := ownerAs[O](owner)
		if !ok {
			return fmt.Errorf("%w: reader expects %s, got %T", ErrOwnerMismatch, TypeOf[O](), owner)
		}
		if value == nil {
			var zero T
			set(o, zero)
			return nil
		}
		v, ok := value.(T)
		if !ok {
			return fmt.Errorf("%w: %s expected, got %T", ErrInvalidValue, TypeOf[T](), value)
		}
		set(o, v)
		return nil
	})
}

// WithDescription attaches a description shown in diagnostics.
func WithDescription(text string) Setting {
	return func(c *optionConfig) { c.description = text }
}

// ownerAs resolves owner to O, looking through embedded struct fields.
func ownerAs[O any](owner any) (O, bool) {
	if o, ok := owner.(O); ok {
		return o, true
	}
	var zero O
	if owner == nil {
		return zero, false
	}
	return findEmbedded[O](reflect.ValueOf(owner), 0)
}

func findEmbedded[O any](v reflect.Value, depth int) (O, bool) {
	var zero O
	if depth > 8 || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return zero, false
	}
	s := v.Elem()
	for i := 0; i < s.NumField(); i++ {
		if !s.Type().Field(i).Anonymous {
			continue
		}
		f := s.Field(i)
		if !f.CanInterface() && f.CanAddr() {
			// Unexported embedding: re-expose the same storage.
			f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
		}
		var candidate reflect.Value
		switch {
		case f.Kind() == reflect.Struct && f.CanAddr():
			candidate = f.Addr()
		case f.Kind() == reflect.Pointer && !f.IsNil():
			candidate = f
		default:
			continue
		}
		if !candidate.CanInterface() {
			continue
		}
		if o, ok := candidate.Interface().(O); ok {
			return o, true
		}
		if o, ok := findEmbedded[O](candidate, depth+1); ok {
			return o, true
		}
	}
	return zero, false
}
