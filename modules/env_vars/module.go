// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package env_vars provides the "env_vars" kind: a snapshot of environment
// variables, optionally filtered by a name prefix.
package env_vars

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"
	"strings"

	"github.com/specialistvlad/optschema/internal/ctxlog"
	"github.com/specialistvlad/optschema/internal/options"
	"github.com/specialistvlad/optschema/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// EnvVars holds the selected variables.
type EnvVars struct {
	options.Holder
	prefix string
	strip  bool
	vars   map[string]string
}

// Schema declares the options of EnvVars. When vars is not supplied it is
// collected from the process environment using the prefix and strip_prefix
// options, so those must be declared first.
var Schema = options.NewSchema("EnvVars").
	Option("prefix",
		options.WithDescription("Only variables whose name starts with this prefix are kept."),
		options.WithCoercer(options.CtyTo[string]()),
		options.WithDefault(""),
		options.WithType(options.Is[string]()),
		options.Reader(func(e *EnvVars, v string) { e.prefix = v })).
	Option("strip_prefix",
		options.WithDescription("Remove the prefix from the kept names."),
		options.WithCoercer(options.CtyTo[bool]()),
		options.WithDefault(false),
		options.WithType(options.Is[bool]()),
		options.Reader(func(e *EnvVars, v bool) { e.strip = v })).
	Option("vars",
		options.WithDescription("Explicit variables; defaults to the filtered process environment."),
		options.WithCoercer(options.CtyTo[map[string]string]()),
		options.DefaultFrom(func(e *EnvVars) map[string]string {
			return collect(os.Environ(), e.prefix, e.strip)
		}),
		options.WithType(options.Is[map[string]string]()),
		options.Reader(func(e *EnvVars, v map[string]string) { e.vars = maps.Clone(v) })).
	Deprecate("trim_prefix", "strip_prefix", "Use strip_prefix instead.")

// New constructs EnvVars from a raw option mapping.
func New(raw map[string]any) (*EnvVars, error) {
	e := &EnvVars{}
	if err := Schema.Construct(e, raw); err != nil {
		return nil, err
	}
	return e, nil
}

// All returns the selected variables.
func (e *EnvVars) All() map[string]string { return e.vars }

// Get returns a single variable.
func (e *EnvVars) Get(name string) (string, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Probe writes the names of the selected variables. Values are not printed.
func (e *EnvVars) Probe(ctx context.Context, w io.Writer) error {
	ctxlog.FromContext(ctx).Debug("Listing environment variables.", "count", len(e.vars))
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	_, err := fmt.Fprintf(w, "%d variables: %s\n", len(names), strings.Join(names, ", "))
	return err
}

// collect builds a map from KEY=VALUE pairs, keeping keys with prefix.
func collect(environ []string, prefix string, strip bool) map[string]string {
	envMap := make(map[string]string)
	for _, e := range environ {
		k, v, ok := strings.Cut(e, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		if strip {
			k = strings.TrimPrefix(k, prefix)
			if k == "" {
				continue
			}
		}
		envMap[k] = v
	}
	return envMap
}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "env_vars",
		Description: "Snapshot of environment variables.",
		Schema:      Schema,
		New: func(ctx context.Context, raw map[string]any) (any, error) {
			return New(raw)
		},
	})
}
