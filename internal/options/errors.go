// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed construction errors via errors.Is.
var (
	// ErrUnknownOption indicates a raw mapping carried a key the schema does not declare.
	ErrUnknownOption = errors.New("options: unknown option")

	// ErrInvalidValue indicates a value failed coercion, a type check or a value check.
	ErrInvalidValue = errors.New("options: invalid option value")

	// ErrOwnerMismatch indicates a reader or owner-dependent default was declared
	// for a different owner type than the one being constructed.
	ErrOwnerMismatch = errors.New("options: owner type mismatch")

	// ErrAlreadyConstructed indicates Construct was called on an owner whose
	// option set is already bound.
	ErrAlreadyConstructed = errors.New("options: owner already constructed")
)

// UnknownOptionError is returned when a raw mapping contains a key that is not
// declared in the schema.
type UnknownOptionError struct {
	Schema string
	Key    string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("%q is not a valid option of the %s schema", e.Key, e.Schema)
}

// Is reports whether target is ErrUnknownOption.
func (e *UnknownOptionError) Is(target error) bool {
	return target == ErrUnknownOption
}

// InvalidValueError is returned when an option value is rejected by a step of
// its pipeline. Expected is set for type failures only.
type InvalidValueError struct {
	Option   string
	Value    any
	Expected string
	Err      error
}

func (e *InvalidValueError) Error() string {
	switch {
	case e.Expected != "":
		return fmt.Sprintf("%q:%s has incorrect type (%s is expected)", e.Option, inspect(e.Value), e.Expected)
	case e.Err != nil:
		return fmt.Sprintf("%q:%s could not be coerced: %v", e.Option, inspect(e.Value), e.Err)
	default:
		return fmt.Sprintf("%q:%s has incorrect value", e.Option, inspect(e.Value))
	}
}

// Is reports whether target is ErrInvalidValue.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// inspect renders a value the way it would be written as a literal, so that
// the string "3" and the number 3 read differently in error messages.
func inspect(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%#v", v)
	}
}
