// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/optschema/internal/hcl"
)

const reportIndent = "    "

// WriteReport prints one block per result followed by a summary line.
func WriteReport(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	failed := 0

	for _, r := range results {
		status := "ok"
		if !r.OK() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(bw, "%-4s %s (%s)\n", status, r.Instance.ID(), r.Instance.FSInformation)

		switch {
		case r.Err != nil:
			writeIndented(bw, []byte(r.Err.Error()+"\n"))
		default:
			writeIndented(bw, hcl.FormatSet(r.Options))
		}
		if r.Probed {
			writeIndented(bw, []byte(r.ProbeOutput))
			if r.ProbeErr != nil {
				writeIndented(bw, []byte("probe: "+r.ProbeErr.Error()+"\n"))
			}
		}
	}

	fmt.Fprintf(bw, "%d instances checked, %d failed\n", len(results), failed)
	return bw.Flush()
}

func writeIndented(w io.Writer, text []byte) {
	for _, line := range bytes.Split(bytes.TrimRight(text, "\n"), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s%s\n", reportIndent, strings.TrimRight(string(line), " "))
	}
}
