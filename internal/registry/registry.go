// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/optschema/internal/options"
)

// Module is the interface that all modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Constructor finalizes a new instance of a kind from a raw option mapping.
type Constructor func(ctx context.Context, raw map[string]any) (any, error)

// Kind binds a kind name to the option schema of its owning type.
type Kind struct {
	Name        string
	Description string
	Schema      *options.Schema
	New         Constructor
}

// Registry holds every kind available to a single application instance.
type Registry struct {
	kinds *Container[*Kind]
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{kinds: NewContainer[*Kind]("kind")}
}

// RegisterKind registers a kind. Registering the same name twice panics.
func (r *Registry) RegisterKind(kind *Kind) {
	slog.Debug("Registering kind.", "name", kind.Name)
	r.kinds.Register(kind.Name, kind)
}

// Kind returns the kind registered under name.
func (r *Registry) Kind(name string) (*Kind, error) {
	return r.kinds.Fetch(name)
}

// KindNames returns the registered kind names in registration order.
func (r *Registry) KindNames() []string {
	return r.kinds.Names()
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []*Kind {
	names := r.kinds.Names()
	out := make([]*Kind, 0, len(names))
	for _, name := range names {
		if k, err := r.kinds.Fetch(name); err == nil {
			out = append(out, k)
		}
	}
	return out
}
