// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package registry provides the central "glue" between instance declarations
// and the Go types that own option schemas.
//
// The Registry maps the kind names used in instance files (e.g.,
// "http_client") to a Kind: the option schema of the owning type and the
// constructor that finalizes an instance from a raw option mapping. Modules
// populate it at startup through the Module interface, and ValidateRegistry
// checks that every registered kind is complete before any instance is built.
package registry
