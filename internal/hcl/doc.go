// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package hcl is the HCL implementation of config.Loader. It reads files of
// the form
//
//	instance "http_client" "default" {
//	  timeout = "5s"
//	}
//
// into model instances whose arguments stay cty values; each kind's option
// schema coerces and checks them. Expressions may reference environment
// variables as env.NAME and call a small set of string functions (upper,
// lower, trimspace, format, concat, jsonencode).
//
// The package also renders finalized option sets back to HCL attribute
// syntax for reports.
package hcl
