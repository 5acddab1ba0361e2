// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package deprecation formats and emits deprecation notices through slog.
package deprecation

import (
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"strings"
)

// leadingSpace matches indentation at the start of every line.
var leadingSpace = regexp.MustCompile(`(?m)^[ \t]+`)

// internalPrefixes are skipped when looking for the caller that triggered a notice.
var internalPrefixes = []string{
	"github.com/specialistvlad/optschema/internal/deprecation.",
	"github.com/specialistvlad/optschema/internal/options.",
	"runtime.",
}

// Announcer writes deprecation notices as warnings.
type Announcer struct {
	logger *slog.Logger
}

// New returns an Announcer writing to logger, or to slog.Default when nil.
func New(logger *slog.Logger) *Announcer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{logger: logger}
}

// Warn logs msg as a warning with leading whitespace removed from each line.
func (a *Announcer) Warn(msg string, attrs ...any) {
	a.logger.Warn(strings.TrimSpace(leadingSpace.ReplaceAllString(msg, "")), attrs...)
}

// Announce reports that name is deprecated, followed by msg.
func (a *Announcer) Announce(name, msg string) {
	text := fmt.Sprintf("%s is deprecated and will be removed in a future release.\n%s", name, msg)
	if caller := externalCaller(); caller != "" {
		a.Warn(text, "caller", caller)
		return
	}
	a.Warn(text)
}

// externalCaller returns file:line of the first frame outside this module's
// schema machinery.
func externalCaller() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isInternal(frame.Function) {
			return fmt.Sprintf("%s:%d", frame.File, frame.Line)
		}
		if !more {
			return ""
		}
	}
}

func isInternal(function string) bool {
	for _, prefix := range internalPrefixes {
		if strings.HasPrefix(function, prefix) {
			return true
		}
	}
	return false
}
