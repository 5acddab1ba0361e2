// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package integrationtests exercises the whole pipeline: HCL files on disk,
// the loader, the registry of kinds and option schema construction.
package integrationtests
