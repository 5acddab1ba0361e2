// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package socketio_client provides the "socketio_client" kind: the settings
// needed to open a socket.io connection, plus an optional request/response
// exchange used when the instance is probed.
package socketio_client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/specialistvlad/optschema/internal/ctxlog"
	"github.com/specialistvlad/optschema/internal/options"
	"github.com/specialistvlad/optschema/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ErrMissingURL is returned when a client is constructed without a url.
var ErrMissingURL = errors.New("url is required")

// DefaultPath is the server path used when the url has none.
const DefaultPath = "/socket.io/"

// Transports lists the accepted transport names.
var Transports = []string{transports.Polling, transports.WebSocket, transports.WebTransport}

// Client holds the connection settings of a socket.io client.
type Client struct {
	options.Holder
	url            *url.URL
	namespace      string
	path           string
	transports     []string
	insecure       bool
	connectTimeout time.Duration
	emitEvent      string
	emitData       any
	onEvent        string
}

func parseURL(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	return url.Parse(s)
}

func socketURL(v any) bool {
	u, ok := v.(*url.URL)
	if !ok || u.Host == "" {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
		return true
	}
	return false
}

func knownTransports(v any) bool {
	names, ok := v.([]string)
	if !ok || len(names) == 0 {
		return false
	}
	for _, name := range names {
		known := false
		for _, t := range Transports {
			known = known || t == name
		}
		if !known {
			return false
		}
	}
	return true
}

func absolutePath(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, "/")
}

func jsonData(v any) bool {
	_, err := json.Marshal(v)
	return err == nil
}

// Schema declares the options of Client.
var Schema = options.NewSchema("SocketIOClient").
	Option("url",
		options.WithDescription("Server URL; http, https, ws or wss."),
		options.WithCoercer(options.Chain(options.CtyTo[string](), parseURL)),
		options.WithDefaultFunc(func(any) (any, error) { return nil, ErrMissingURL }),
		options.WithType(options.Is[*url.URL]()),
		options.WithAllowed(options.Predicate("an absolute socket.io server URL", socketURL)),
		options.Reader(func(c *Client, v *url.URL) { c.url = v })).
	Option("namespace",
		options.WithCoercer(options.CtyTo[string]()),
		options.WithDefault("/"),
		options.WithType(options.Is[string]()),
		options.WithAllowed(options.Predicate("a namespace starting with /", absolutePath)),
		options.Reader(func(c *Client, v string) { c.namespace = v })).
	Option("path",
		options.WithDescription("Server path; defaults to the url path or " + DefaultPath + "."),
		options.WithCoercer(options.CtyTo[string]()),
		options.DefaultFrom(func(c *Client) string {
			if c.url != nil && c.url.Path != "" && c.url.Path != "/" {
				return c.url.Path
			}
			return DefaultPath
		}),
		options.WithType(options.Is[string]()),
		options.WithAllowed(options.Predicate("a path starting with /", absolutePath)),
		options.Reader(func(c *Client, v string) { c.path = v })).
	Option("transports",
		options.WithCoercer(options.CtyTo[[]string]()),
		options.WithDefaultFunc(func(any) (any, error) { return []string{transports.WebSocket}, nil }),
		options.WithType(options.Is[[]string]()),
		options.WithAllowed(options.Predicate("a non-empty list of polling, websocket, webtransport", knownTransports)),
		options.Reader(func(c *Client, v []string) { c.transports = slices.Clone(v) })).
	Option("insecure_skip_verify",
		options.WithCoercer(options.CtyTo[bool]()),
		options.WithDefault(false),
		options.WithType(options.Is[bool]()),
		options.Reader(func(c *Client, v bool) { c.insecure = v })).
	Option("connect_timeout",
		options.WithCoercer(options.Chain(options.CtyTo[string](), options.ParseDuration)),
		options.WithDefault(15*time.Second),
		options.WithType(options.Is[time.Duration]()),
		options.Reader(func(c *Client, v time.Duration) { c.connectTimeout = v })).
	Option("emit_event",
		options.WithDescription("Event emitted after connecting when probed."),
		options.WithCoercer(options.CtyTo[string]()),
		options.WithType(options.Is[string]()),
		options.Reader(func(c *Client, v string) { c.emitEvent = v })).
	Option("emit_data",
		options.WithCoercer(toGo),
		options.WithAllowed(options.Predicate("JSON-encodable data", jsonData)),
		options.Reader(func(c *Client, v any) { c.emitData = v })).
	Option("on_event",
		options.WithDescription("Event awaited after emit_event; defaults to emit_event."),
		options.WithCoercer(options.CtyTo[string]()),
		options.DefaultFrom(func(c *Client) string { return c.emitEvent }),
		options.WithType(options.Is[string]()),
		options.Reader(func(c *Client, v string) { c.onEvent = v }))

// New constructs a Client from a raw option mapping.
func New(raw map[string]any) (*Client, error) {
	c := &Client{}
	if err := Schema.Construct(c, raw); err != nil {
		return nil, err
	}
	return c, nil
}

// URL returns the server URL.
func (c *Client) URL() *url.URL { return c.url }

// Namespace returns the namespace joined after connecting.
func (c *Client) Namespace() string { return c.namespace }

// Path returns the server path.
func (c *Client) Path() string { return c.path }

// TransportNames returns the enabled transports in preference order.
func (c *Client) TransportNames() []string { return c.transports }

// ConnectTimeout returns how long Dial waits for the connect event.
func (c *Client) ConnectTimeout() time.Duration { return c.connectTimeout }

// baseURL is the scheme and host part of url.
func (c *Client) baseURL() string {
	return fmt.Sprintf("%s://%s", c.url.Scheme, c.url.Host)
}

// Dial opens a connection and waits for the connect event.
func (c *Client) Dial(ctx context.Context) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx).With("kind", "socketio_client", "url", c.url.String())
	logger.Info("Creating new client instance...")

	opts := socket.DefaultOptions()
	opts.SetPath(c.path)
	if c.insecure {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(c.transports...))

	connectChan := make(chan error, 1)

	manager := socket.NewManager(c.baseURL(), opts)
	sock := manager.Socket(c.namespace, opts)

	sock.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", sock.Id())
		connectChan <- nil
	})
	sock.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	logger.Debug("Initiating connection...")
	sock.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			sock.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return sock, nil
	case <-ctx.Done():
		sock.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(c.connectTimeout):
		sock.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", c.connectTimeout)
	}
}

// Probe connects, performs the optional emit/await exchange and disconnects.
func (c *Client) Probe(ctx context.Context, w io.Writer) error {
	sock, err := c.Dial(ctx)
	if err != nil {
		return err
	}
	defer sock.Disconnect()

	if _, err := fmt.Fprintf(w, "connected to %s%s as %s\n", c.baseURL(), c.namespace, sock.Id()); err != nil {
		return err
	}
	if c.emitEvent == "" {
		return nil
	}

	done := make(chan any, 1)
	sock.Once(types.EventName(c.onEvent), func(data ...any) {
		var first any
		if len(data) > 0 {
			first = data[0]
		}
		done <- first
	})
	sock.Emit(c.emitEvent, c.emitData)

	opCtx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	select {
	case <-opCtx.Done():
		return fmt.Errorf("timed out after %v waiting for event '%s'", c.connectTimeout, c.onEvent)
	case data := <-done:
		encoded, _ := json.Marshal(data)
		_, err := fmt.Fprintf(w, "%s -> %s\n", c.onEvent, encoded)
		return err
	}
}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "socketio_client",
		Description: "socket.io connection settings.",
		Schema:      Schema,
		New: func(ctx context.Context, raw map[string]any) (any, error) {
			return New(raw)
		},
	})
}
