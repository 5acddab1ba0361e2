// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every configuration file reachable from paths and returns
	// the declared instances in file order.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
