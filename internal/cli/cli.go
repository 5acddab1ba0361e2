// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	ExitFailure = 1 // a check failed or the app could not start
	ExitUsage   = 2 // invalid flags or arguments
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

// NewRootCommand builds the command tree writing results to outW and logs
// and diagnostics to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "optschema",
		Short:         "Validate declared instances against their option schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(outW)
	cmd.SetErr(errW)

	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.logLevel, "log-level", "info", "logging level: debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", "text", "log output format: text or json")

	cmd.AddCommand(newCheckCmd(opts), newKindsCmd(opts))
	return cmd
}

// Execute runs the command tree with args. Any returned error is an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	cmd := NewRootCommand(outW, errW)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}
