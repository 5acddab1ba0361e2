// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import "fmt"

// StepKind identifies the variant held by a Step.
type StepKind int

const (
	StepCoerce StepKind = iota
	StepDefaultValue
	StepDefaultFromOwner
	StepTypeCheck
	StepValueCheck
	StepAssignReader
)

// String returns a human-readable step name.
func (k StepKind) String() string {
	switch k {
	case StepCoerce:
		return "coerce"
	case StepDefaultValue:
		return "default"
	case StepDefaultFromOwner:
		return "default-from-owner"
	case StepTypeCheck:
		return "type-check"
	case StepValueCheck:
		return "value-check"
	case StepAssignReader:
		return "reader"
	default:
		return "unknown"
	}
}

// Coercer converts a supplied value before it is validated. Returning an
// error rejects the value.
type Coercer func(any) (any, error)

// DefaultFunc computes a default value from the instance under construction.
type DefaultFunc func(owner any) (any, error)

// ReaderFunc stores a finalized value into the owner's storage slot for one option.
type ReaderFunc func(owner, value any) error

// Step is one stage of an option's pipeline. Steps hold no per-call state;
// applying a step only touches the owner and the scratch mapping it is given.
type Step struct {
	kind       StepKind
	option     string
	coerce     Coercer
	value      any
	defaultFn  DefaultFunc
	constraint Constraint
	reader     ReaderFunc
}

// Kind returns the variant held by s.
func (s Step) Kind() StepKind {
	return s.kind
}

// Constraint returns the constraint checked by a type-check or value-check step.
func (s Step) Constraint() Constraint {
	return s.constraint
}

// DefaultValue returns the value set by a default step.
func (s Step) DefaultValue() any {
	return s.value
}

// String renders the step for diagnostics.
func (s Step) String() string {
	switch s.kind {
	case StepDefaultValue:
		return fmt.Sprintf("%s(%s)", s.kind, inspect(s.value))
	case StepTypeCheck, StepValueCheck:
		return fmt.Sprintf("%s(%s)", s.kind, s.constraint)
	default:
		return s.kind.String()
	}
}

// apply runs the step against m in place. m is always a scratch copy owned
// by the current construction.
func (s Step) apply(owner any, m map[string]any) error {
	value, present := m[s.option]

	switch s.kind {
	case StepCoerce:
		if !present {
			return nil
		}
		coerced, err := s.coerce(value)
		if err != nil {
			return &InvalidValueError{Option: s.option, Value: value, Err: err}
		}
		m[s.option] = coerced

	case StepDefaultValue:
		if !present {
			m[s.option] = s.value
		}

	case StepDefaultFromOwner:
		if present {
			return nil
		}
		v, err := s.defaultFn(owner)
		if err != nil {
			return fmt.Errorf("default for option %q: %w", s.option, err)
		}
		m[s.option] = v

	case StepTypeCheck:
		if present && !s.constraint.Check(value) {
			return &InvalidValueError{Option: s.option, Value: value, Expected: s.constraint.String()}
		}

	case StepValueCheck:
		if present && !s.constraint.Check(value) {
			return &InvalidValueError{Option: s.option, Value: value}
		}

	case StepAssignReader:
		if !present {
			return nil
		}
		if err := s.reader(owner, value); err != nil {
			return fmt.Errorf("reader for option %q: %w", s.option, err)
		}
	}

	return nil
}
