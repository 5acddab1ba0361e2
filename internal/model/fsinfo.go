// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// FSInfo ties a parsed instance back to the file it was declared in, so
// construction failures can name the file and line that supplied the values.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// FSInfo is the source location of a declaration.
type FSInfo struct {
	FilePath string
	Range    hcl.Range
}

// NewFSInfo records the file and range a declaration came from.
func NewFSInfo(filePath string, rng hcl.Range) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
		Range:    rng,
	}
}

// String renders the location as path:line.
func (f *FSInfo) String() string {
	if f == nil {
		return "<unknown>"
	}
	if f.Range.Start.Line == 0 {
		return f.FilePath
	}
	return fmt.Sprintf("%s:%d", f.FilePath, f.Range.Start.Line)
}
