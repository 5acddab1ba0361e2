// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package http_request provides the "http_request" kind. Its owning type
// embeds http_client.Client and its schema extends http_client.Schema, so a
// request accepts every client setting in addition to its own options.
package http_request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/specialistvlad/optschema/internal/ctxlog"
	"github.com/specialistvlad/optschema/internal/options"
	"github.com/specialistvlad/optschema/internal/registry"
	"github.com/specialistvlad/optschema/modules/http_client"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ErrMissingURL is returned when a request is constructed without a url.
var ErrMissingURL = errors.New("url is required")

// Request is a single HTTP request together with its client settings.
type Request struct {
	http_client.Client
	url          *url.URL
	method       string
	headers      map[string]string
	body         string
	expectStatus int
}

// Methods lists the accepted values of the method option.
var Methods = []any{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

func parseURL(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	return url.Parse(s)
}

func absoluteHTTPURL(v any) bool {
	u, ok := v.(*url.URL)
	return ok && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func statusCode(v any) bool {
	n, ok := v.(int)
	return ok && n >= 100 && n <= 599
}

// Schema declares the options of Request on top of the client options.
var Schema = http_client.Schema.Extend("HTTPRequest").
	Option("url",
		options.WithDescription("Absolute http(s) URL."),
		options.WithCoercer(options.Chain(options.CtyTo[string](), parseURL)),
		options.WithDefaultFunc(func(any) (any, error) { return nil, ErrMissingURL }),
		options.WithType(options.Is[*url.URL]()),
		options.WithAllowed(options.Predicate("an absolute http or https URL", absoluteHTTPURL)),
		options.Reader(func(r *Request, v *url.URL) { r.url = v })).
	Option("method",
		options.WithDescription("Request method; case-insensitive."),
		options.WithCoercer(options.Chain(options.CtyTo[string](), options.Coerce(strings.ToUpper))),
		options.WithDefault(http.MethodGet),
		options.WithType(options.Is[string]()),
		options.WithAllow(Methods...),
		options.Reader(func(r *Request, v string) { r.method = v })).
	Option("headers",
		options.WithCoercer(options.CtyTo[map[string]string]()),
		options.WithDefaultFunc(func(any) (any, error) { return map[string]string{}, nil }),
		options.WithType(options.Is[map[string]string]()),
		options.Reader(func(r *Request, v map[string]string) { r.headers = maps.Clone(v) })).
	Option("body",
		options.WithCoercer(options.CtyTo[string]()),
		options.WithDefault(""),
		options.WithType(options.Is[string]()),
		options.Reader(func(r *Request, v string) { r.body = v })).
	Option("expect_status",
		options.WithDescription("Status code a probe must receive."),
		options.WithCoercer(options.CtyTo[int]()),
		options.WithDefault(http.StatusOK),
		options.WithType(options.Is[int]()),
		options.WithAllowed(options.Predicate("an HTTP status code", statusCode)),
		options.Reader(func(r *Request, v int) { r.expectStatus = v }))

// New constructs a Request from a raw option mapping.
func New(raw map[string]any) (*Request, error) {
	r := &Request{}
	if err := Schema.Construct(r, raw); err != nil {
		return nil, err
	}
	return r, nil
}

// URL returns the target URL.
func (r *Request) URL() *url.URL { return r.url }

// Method returns the upper-case request method.
func (r *Request) Method() string { return r.method }

// Headers returns the request headers.
func (r *Request) Headers() map[string]string { return r.headers }

// ExpectStatus returns the status code a probe must receive.
func (r *Request) ExpectStatus() int { return r.expectStatus }

// Do performs the request and returns the status code and body.
func (r *Request) Do(ctx context.Context) (int, []byte, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Making HTTP request", "method", r.method, "url", r.url.String())

	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, r.url.String(), body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := r.HTTP().Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	logger.Info("Received HTTP response", "status", resp.Status)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, bodyBytes, nil
}

// Probe performs the request and fails unless the expected status comes back.
func (r *Request) Probe(ctx context.Context, w io.Writer) error {
	status, body, err := r.Do(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s %s -> %d (%d bytes)\n", r.method, r.url, status, len(body)); err != nil {
		return err
	}
	if status != r.expectStatus {
		return fmt.Errorf("unexpected status %d, want %d", status, r.expectStatus)
	}
	return nil
}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "http_request",
		Description: "A single HTTP request with its client settings.",
		Schema:      Schema,
		New: func(ctx context.Context, raw map[string]any) (any, error) {
			return New(raw)
		},
	})
}
