// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/specialistvlad/optschema/internal/deprecation"
)

// ExtendHook runs when a derived schema is created from base, after the
// derived schema received its copy of base's options and before anything
// else is declared on it.
type ExtendHook func(base, derived *Schema)

// SchemaOption configures a Schema at creation time.
type SchemaOption func(*Schema)

// WithLogger sets the logger used for debug output and deprecation notices.
func WithLogger(logger *slog.Logger) SchemaOption {
	return func(s *Schema) { s.logger = logger }
}

// Schema is the ordered registry of options owned by one type.
type Schema struct {
	name   string
	parent *Schema
	logger *slog.Logger
	notes  *deprecation.Announcer

	mu      sync.RWMutex
	order   []string
	specs   map[string]*Option
	aliases map[string]alias
	hooks   []ExtendHook
	attrs   attributes
}

type alias struct {
	replacement string
	message     string
}

// NewSchema creates an empty schema for the type called name.
func NewSchema(name string, opts ...SchemaOption) *Schema {
	s := &Schema{
		name:    name,
		logger:  slog.Default(),
		specs:   make(map[string]*Option),
		aliases: make(map[string]alias),
		attrs:   newAttributes(),
		hooks:   []ExtendHook{inheritAttributes},
	}
	for _, apply := range opts {
		apply(s)
	}
	s.notes = deprecation.New(s.logger)
	return s
}

// Name returns the name of the owning type.
func (s *Schema) Name() string { return s.name }

// Parent returns the schema this one was extended from, or nil.
func (s *Schema) Parent() *Schema { return s.parent }

// Define inserts opt, replacing any option of the same name. A replaced
// option keeps the position of the one it replaces.
func (s *Schema) Define(opt *Option) *Schema {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.specs[opt.name]; !exists {
		s.order = append(s.order, opt.name)
	}
	s.specs[opt.name] = opt
	s.logger.Debug("Option defined.", "schema", s.name, "option", opt.name, "steps", len(opt.steps))
	return s
}

// Option declares an option on the schema. It is the declaration entry point
// used by owning types; it returns s so declarations can be chained.
func (s *Schema) Option(name string, settings ...Setting) *Schema {
	return s.Define(NewOption(name, settings...))
}

// Lookup returns the option declared under name.
func (s *Schema) Lookup(name string) (*Option, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opt, ok := s.specs[name]
	return opt, ok
}

// Names returns the declared option names in declaration order.
func (s *Schema) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Options returns the declared options in declaration order.
func (s *Schema) Options() []*Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Option, len(s.order))
	for i, name := range s.order {
		out[i] = s.specs[name]
	}
	return out
}

// Deprecate accepts old as an alias of replacement. Supplying old at
// construction announces a deprecation notice and renames the key; an
// explicit replacement key wins over the alias.
func (s *Schema) Deprecate(old, replacement, message string) *Schema {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aliases[old] = alias{replacement: replacement, message: message}
	return s
}

// OnExtend registers a hook run for every schema derived from s, including
// schemas derived from those. Hooks run in registration order, after the
// hooks inherited from s's own ancestors.
func (s *Schema) OnExtend(hook ExtendHook) *Schema {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
	return s
}

// Extend creates the schema of a type derived from s. The derived schema
// starts with the same options under a fresh registry, so declaring or
// overriding options on it leaves s untouched.
func (s *Schema) Extend(name string) *Schema {
	derived := s.clone(name)

	s.mu.RLock()
	hooks := make([]ExtendHook, len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.RUnlock()

	for _, hook := range hooks {
		hook(s, derived)
	}
	s.logger.Debug("Schema extended.", "base", s.name, "derived", name, "options", len(derived.order))
	return derived
}

// clone copies the registry for inheritance: new backing map and order,
// same Option values.
func (s *Schema) clone(name string) *Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	derived := &Schema{
		name:    name,
		parent:  s,
		logger:  s.logger,
		notes:   s.notes,
		order:   make([]string, len(s.order)),
		specs:   make(map[string]*Option, len(s.specs)),
		aliases: make(map[string]alias, len(s.aliases)),
		hooks:   make([]ExtendHook, len(s.hooks)),
		attrs:   newAttributes(),
	}
	copy(derived.order, s.order)
	copy(derived.hooks, s.hooks)
	for k, v := range s.specs {
		derived.specs[k] = v
	}
	for k, v := range s.aliases {
		derived.aliases[k] = v
	}
	return derived
}

// Process validates raw against the schema and runs every option's pipeline
// in declaration order, returning the finalized mapping. raw is never
// modified. Every key is checked before any pipeline runs.
func (s *Schema) Process(owner any, raw map[string]any) (map[string]any, error) {
	s.mu.RLock()
	specs := make([]*Option, len(s.order))
	for i, name := range s.order {
		specs[i] = s.specs[name]
	}
	known := make(map[string]*Option, len(s.specs))
	for k, v := range s.specs {
		known[k] = v
	}
	aliases := make(map[string]alias, len(s.aliases))
	for k, v := range s.aliases {
		aliases[k] = v
	}
	s.mu.RUnlock()

	scratch := make(map[string]any, len(raw))
	for k, v := range raw {
		scratch[k] = v
	}

	olds := make([]string, 0, len(aliases))
	for old := range aliases {
		olds = append(olds, old)
	}
	sort.Strings(olds)

	for _, old := range olds {
		a := aliases[old]
		v, ok := scratch[old]
		if !ok {
			continue
		}
		s.notes.Announce(fmt.Sprintf("Option %q of %s", old, s.name),
			fmt.Sprintf("Please use %q instead.\n%s", a.replacement, a.message))
		delete(scratch, old)
		if _, explicit := scratch[a.replacement]; !explicit {
			scratch[a.replacement] = v
		}
	}

	if err := ensureKnown(s.name, scratch, known); err != nil {
		return nil, err
	}

	for _, opt := range specs {
		if err := opt.Transform(owner, scratch); err != nil {
			return nil, err
		}
	}

	return scratch, nil
}

// ensureKnown must be called with a snapshot of the registry.
func ensureKnown(schema string, m map[string]any, known map[string]*Option) error {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := known[key]; !ok {
			return &UnknownOptionError{Schema: schema, Key: key}
		}
	}
	return nil
}
