// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package print provides the "print" kind: a set of key/value pairs written
// out in sorted order.
package print

import (
	"context"
	"fmt"
	"io"
	"maps"
	"sort"

	"github.com/specialistvlad/optschema/internal/ctxlog"
	"github.com/specialistvlad/optschema/internal/options"
	"github.com/specialistvlad/optschema/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Printer writes its values, one per line, behind a prefix.
type Printer struct {
	options.Holder
	values map[string]string
	prefix string
}

// Schema declares the options of Printer.
var Schema = options.NewSchema("Printer").
	Option("value",
		options.WithDescription("Key/value pairs to print."),
		options.WithCoercer(options.CtyTo[map[string]string]()),
		options.WithDefaultFunc(func(any) (any, error) { return map[string]string{}, nil }),
		options.WithType(options.Is[map[string]string]()),
		options.Reader(func(p *Printer, v map[string]string) { p.values = maps.Clone(v) })).
	Option("prefix",
		options.WithDescription("Written before every line."),
		options.WithCoercer(options.CtyTo[string]()),
		options.WithDefault("      "),
		options.WithType(options.Is[string]()),
		options.Reader(func(p *Printer, v string) { p.prefix = v }))

// New constructs a Printer from a raw option mapping.
func New(raw map[string]any) (*Printer, error) {
	p := &Printer{}
	if err := Schema.Construct(p, raw); err != nil {
		return nil, err
	}
	return p, nil
}

// Values returns the configured pairs.
func (p *Printer) Values() map[string]string { return p.values }

// Prefix returns the line prefix.
func (p *Printer) Prefix() string { return p.prefix }

// Print writes the values sorted by key. An empty set prints "(null)".
func (p *Printer) Print(w io.Writer) error {
	if len(p.values) == 0 {
		_, err := fmt.Fprintf(w, "%s(null)\n", p.prefix)
		return err
	}

	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s%s = %q\n", p.prefix, k, p.values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Probe prints the values to w.
func (p *Printer) Probe(ctx context.Context, w io.Writer) error {
	ctxlog.FromContext(ctx).Debug("Printing values.", "count", len(p.values))
	return p.Print(w)
}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "print",
		Description: "Prints key/value pairs.",
		Schema:      Schema,
		New: func(ctx context.Context, raw map[string]any) (any, error) {
			return New(raw)
		},
	})
}
