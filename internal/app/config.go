// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths []string // .hcl files or directories

	LogFormat string
	LogLevel  string

	// Probe runs instances that support it after construction.
	Probe        bool
	ProbeTimeout time.Duration
	WorkerCount  int
}

// Defaults applied by NewConfig to zero fields.
const (
	DefaultLogFormat    = "text"
	DefaultLogLevel     = "info"
	DefaultProbeTimeout = 10 * time.Second
	DefaultWorkerCount  = 4
)

// NewConfig normalizes and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, ok := parseLevel(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.ProbeTimeout < 0 {
		return nil, fmt.Errorf("probe timeout must not be negative, got %s", cfg.ProbeTimeout)
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}

	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("worker count must not be negative, got %d", cfg.WorkerCount)
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}

	return &cfg, nil
}
