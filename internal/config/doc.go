// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package config defines the format-agnostic configuration model (the set
// of declared instances) and the Loader interface that produces it.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
