// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/optschema/internal/config"
	"github.com/specialistvlad/optschema/internal/ctxlog"
	"github.com/specialistvlad/optschema/internal/registry"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	loader   config.Loader
	config   *Config
}

// NewApp builds an App with its own logger (writing to logW) and registry.
// When no modules are given the core modules are registered. A registry
// that fails validation is reported as an error.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if loader == nil {
		return nil, errors.New("app: nil loader")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("app: worker count must be at least 1, got %d (use NewConfig)", cfg.WorkerCount)
	}
	if cfg.ProbeTimeout <= 0 {
		return nil, fmt.Errorf("app: probe timeout must be positive, got %s (use NewConfig)", cfg.ProbeTimeout)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "kinds", reg.KindNames())

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		loader:   loader,
		config:   cfg,
	}, nil
}

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
