// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package http_client provides the "http_client" kind: connection and
// timeout settings for a shared *http.Client.
package http_client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/specialistvlad/optschema/internal/options"
	"github.com/specialistvlad/optschema/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Client holds HTTP client settings. Types embedding Client and constructed
// from a schema extended from Schema get the same settings and accessors.
type Client struct {
	options.Holder
	timeout         time.Duration
	maxIdleConns    int
	maxIdlePerHost  int
	idleConnTimeout time.Duration

	once   sync.Once
	client *http.Client
}

var durationCoercer = options.Chain(options.CtyTo[string](), options.ParseDuration)

func positiveDuration(v any) bool {
	d, ok := v.(time.Duration)
	return ok && d > 0
}

func nonNegativeInt(v any) bool {
	n, ok := v.(int)
	return ok && n >= 0
}

// Schema declares the options of Client.
var Schema = options.NewSchema("HTTPClient").
	Option("timeout",
		options.WithDescription("Overall request timeout, e.g. \"5s\"."),
		options.WithCoercer(durationCoercer),
		options.WithDefault(30*time.Second),
		options.WithType(options.Is[time.Duration]()),
		options.WithAllowed(options.Predicate("a positive duration", positiveDuration)),
		options.Reader(func(c *Client, v time.Duration) { c.timeout = v })).
	Option("max_idle_conns",
		options.WithCoercer(options.CtyTo[int]()),
		options.WithDefault(100),
		options.WithType(options.Is[int]()),
		options.WithAllowed(options.Predicate("a non-negative integer", nonNegativeInt)),
		options.Reader(func(c *Client, v int) { c.maxIdleConns = v })).
	Option("max_idle_conns_per_host",
		options.WithCoercer(options.CtyTo[int]()),
		options.WithDefault(10),
		options.WithType(options.Is[int]()),
		options.WithAllowed(options.Predicate("a non-negative integer", nonNegativeInt)),
		options.Reader(func(c *Client, v int) { c.maxIdlePerHost = v })).
	Option("idle_conn_timeout",
		options.WithCoercer(durationCoercer),
		options.WithDefault(90*time.Second),
		options.WithType(options.Is[time.Duration]()),
		options.WithAllowed(options.Predicate("a positive duration", positiveDuration)),
		options.Reader(func(c *Client, v time.Duration) { c.idleConnTimeout = v }))

// New constructs a Client from a raw option mapping.
func New(raw map[string]any) (*Client, error) {
	c := &Client{}
	if err := Schema.Construct(c, raw); err != nil {
		return nil, err
	}
	return c, nil
}

// Timeout returns the overall request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// MaxIdleConns returns the pool size across all hosts.
func (c *Client) MaxIdleConns() int { return c.maxIdleConns }

// MaxIdleConnsPerHost returns the pool size per host.
func (c *Client) MaxIdleConnsPerHost() int { return c.maxIdlePerHost }

// IdleConnTimeout returns how long idle connections are kept.
func (c *Client) IdleConnTimeout() time.Duration { return c.idleConnTimeout }

// HTTP returns the *http.Client built from the settings. It is created on
// first use and shared afterwards.
func (c *Client) HTTP() *http.Client {
	c.once.Do(func() {
		c.client = &http.Client{
			Timeout: c.timeout,
			Transport: &http.Transport{
				MaxIdleConns:        c.maxIdleConns,
				MaxIdleConnsPerHost: c.maxIdlePerHost,
				IdleConnTimeout:     c.idleConnTimeout,
			},
		}
	})
	return c.client
}

// Close releases idle connections of the built client, if any.
func (c *Client) Close() error {
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	return nil
}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "http_client",
		Description: "Shared HTTP client settings.",
		Schema:      Schema,
		New: func(ctx context.Context, raw map[string]any) (any, error) {
			return New(raw)
		},
	})
}
