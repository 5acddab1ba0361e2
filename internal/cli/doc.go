// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package cli builds the optschema command tree on cobra and translates
// failures into ExitError values carrying the process exit code.
package cli
