// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/optschema/internal/ctxlog"
	"github.com/specialistvlad/optschema/internal/model"
	"github.com/specialistvlad/optschema/internal/options"
	"golang.org/x/sync/errgroup"
)

// ErrCheckFailed is returned by Run when at least one instance failed.
var ErrCheckFailed = errors.New("one or more instances failed")

// Prober is implemented by constructed values that can exercise their
// configuration, for example by connecting to the configured server.
type Prober interface {
	Probe(ctx context.Context, w io.Writer) error
}

// optionHolder is implemented by every value constructed through a schema.
type optionHolder interface {
	Options() options.Set
}

// Result is the outcome of constructing (and optionally probing) one instance.
type Result struct {
	Instance    *model.Instance
	Value       any
	Options     options.Set
	Err         error
	Probed      bool
	ProbeOutput string
	ProbeErr    error
}

// OK reports whether construction and the probe, if any, succeeded.
func (r Result) OK() bool {
	return r.Err == nil && r.ProbeErr == nil
}

// Check loads every instance under paths and constructs it. The returned
// error covers loading only; construction failures are recorded per result.
// Results are in declaration order.
func (a *App) Check(ctx context.Context, paths ...string) ([]Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if len(paths) == 0 {
		return nil, errors.New("no configuration paths given")
	}

	cfg, err := a.loader.Load(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded.", "instances", len(cfg.Instances))

	results := make([]Result, len(cfg.Instances))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, inst := range cfg.Instances {
		g.Go(func() error {
			results[i] = a.checkInstance(gctx, inst)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *App) checkInstance(ctx context.Context, inst *model.Instance) Result {
	logger := ctxlog.FromContext(ctx).With("instance", inst.ID(), "source", inst.FSInformation.String())
	ctx = ctxlog.WithLogger(ctx, logger)
	res := Result{Instance: inst}

	kind, err := a.registry.Kind(inst.Kind)
	if err != nil {
		res.Err = err
		return res
	}

	value, err := kind.New(ctx, inst.RawOptions())
	if err != nil {
		logger.Debug("Construction failed.", "error", err)
		res.Err = err
		return res
	}
	res.Value = value
	if h, ok := value.(optionHolder); ok {
		res.Options = h.Options()
	}
	if closer, ok := value.(io.Closer); ok {
		defer closer.Close()
	}
	logger.Debug("Instance constructed.", "options", res.Options.String())

	prober, ok := value.(Prober)
	if !a.config.Probe || !ok {
		return res
	}

	probeCtx, cancel := context.WithTimeout(ctx, a.config.ProbeTimeout)
	defer cancel()

	var out bytes.Buffer
	res.Probed = true
	res.ProbeErr = prober.Probe(probeCtx, &out)
	res.ProbeOutput = out.String()
	if res.ProbeErr != nil {
		logger.Warn("Probe failed.", "error", res.ProbeErr)
	}
	return res
}

// Run checks the configured paths and writes a report to the output writer.
func (a *App) Run(ctx context.Context) error {
	a.logger.Debug("App.Run method started.", "paths", a.config.Paths)

	results, err := a.Check(ctx, a.config.Paths...)
	if err != nil {
		return err
	}
	if err := WriteReport(a.outW, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	for _, r := range results {
		if !r.OK() {
			return ErrCheckFailed
		}
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
