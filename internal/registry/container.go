// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is matched by ElementNotFoundError.
var ErrNotFound = errors.New("registry: element not found")

// ElementNotFoundError is returned by Fetch for unknown names.
type ElementNotFoundError struct {
	Registry string
	Name     string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("%q doesn't exist in %s registry", e.Name, e.Registry)
}

// Is reports whether target is ErrNotFound.
func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Container is a thread-safe, named collection of elements.
type Container[T any] struct {
	name string

	mu       sync.RWMutex
	order    []string
	elements map[string]T
}

// NewContainer creates an empty container. The name appears in lookup errors.
func NewContainer[T any](name string) *Container[T] {
	return &Container[T]{name: name, elements: make(map[string]T)}
}

// Name returns the container name.
func (c *Container[T]) Name() string {
	return c.name
}

// Register adds an element. Registering a name twice is a programming error
// and panics.
func (c *Container[T]) Register(name string, element T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.elements[name]; exists {
		panic(fmt.Sprintf("%s registry: element with name '%s' already registered", c.name, name))
	}
	c.elements[name] = element
	c.order = append(c.order, name)
}

// Fetch returns the element registered under name.
func (c *Container[T]) Fetch(name string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	element, ok := c.elements[name]
	if !ok {
		var zero T
		return zero, &ElementNotFoundError{Registry: c.name, Name: name}
	}
	return element, nil
}

// FetchOr returns the element registered under name, or the result of
// fallback when there is none.
func (c *Container[T]) FetchOr(name string, fallback func() T) T {
	element, err := c.Fetch(name)
	if err != nil {
		return fallback()
	}
	return element
}

// Has reports whether name is registered.
func (c *Container[T]) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.elements[name]
	return ok
}

// Names returns the registered names in registration order.
func (c *Container[T]) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of registered elements.
func (c *Container[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
