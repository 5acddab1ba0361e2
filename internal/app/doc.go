// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package app contains the core application logic: it registers the kinds
// of every module, loads declared instances and constructs each of them
// through its kind's option schema, decoupled from any specific entrypoint
// like a CLI.
package app
