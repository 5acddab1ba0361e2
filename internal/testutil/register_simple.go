// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package testutil

import (
	"context"

	"github.com/specialistvlad/optschema/internal/options"
	"github.com/specialistvlad/optschema/internal/registry"
)

// Object is a generic owning type for schemas declared in tests.
type Object struct {
	options.Holder
}

// SimpleModule registers a single kind. When New is nil, instances are
// constructed as *Object through Schema.
type SimpleModule struct {
	KindName string
	Schema   *options.Schema
	New      registry.Constructor
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	newFn := m.New
	if newFn == nil {
		schema := m.Schema
		newFn = func(ctx context.Context, raw map[string]any) (any, error) {
			obj := &Object{}
			if err := schema.Construct(obj, raw); err != nil {
				return nil, err
			}
			return obj, nil
		}
	}
	r.RegisterKind(&registry.Kind{
		Name:        m.KindName,
		Description: "test kind",
		Schema:      m.Schema,
		New:         newFn,
	})
}
