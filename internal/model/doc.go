// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package model holds the format-agnostic representation of declared
// instances. Loaders (see internal/hcl) produce model values; the app layer
// hands their raw options to the registered kind's schema.
package model
