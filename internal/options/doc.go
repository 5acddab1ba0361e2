// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package options implements a declarative option schema engine.
//
// An owning type declares its options once, at package initialization, on a
// Schema. Each declared Option carries an ordered pipeline of Steps built
// from its settings:
//
//	coerce -> default -> type check -> value check -> reader assignment
//
// At construction time a raw mapping supplied by the caller is checked
// against the Schema (unknown keys are rejected before anything else runs),
// threaded through every Option's pipeline in declaration order and frozen
// into an immutable Set bound to the new instance.
//
//	var userSchema = options.NewSchema("User").
//		Option("name", options.WithType(options.Is[string]()),
//			options.Reader(func(u *User, v string) { u.name = v })).
//		Option("admin", options.WithDefault(false), options.WithAllow(true, false),
//			options.Reader(func(u *User, v bool) { u.admin = v }))
//
//	type User struct {
//		options.Holder
//		name  string
//		admin bool
//	}
//
//	func NewUser(opts map[string]any) (*User, error) {
//		u := &User{}
//		if err := userSchema.Construct(u, opts); err != nil {
//			return nil, err
//		}
//		return u, nil
//	}
//
// # Inheritance
//
// Schema.Extend creates the schema of a derived type. The derived schema gets
// a fresh registry holding the same Option values, so declarations on the
// derived schema never reach the base. Hooks registered with OnExtend run
// for every derived schema, and are carried down so that grandchildren run
// them too.
//
// # Concurrency
//
// Declarations normally happen during package initialization. A Schema is
// still guarded by a mutex, so a construction racing with a late declaration
// observes either the old or the new registry, never a torn one.
package options
