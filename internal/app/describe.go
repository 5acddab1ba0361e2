// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Describe writes every registered kind with its options and their pipelines
// in declaration order.
func (a *App) Describe(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, kind := range a.registry.Kinds() {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\t(%s)\t%s\n", kind.Name, kind.Schema.Name(), kind.Description)
		for _, opt := range kind.Schema.Options() {
			steps := opt.Steps()
			parts := make([]string, len(steps))
			for j, s := range steps {
				parts[j] = s.String()
			}
			pipeline := strings.Join(parts, " -> ")
			if pipeline == "" {
				pipeline = "(pass-through)"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", opt.Name(), pipeline, opt.Description())
		}
	}
	return tw.Flush()
}
