// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"github.com/specialistvlad/optschema/internal/app"
	"github.com/specialistvlad/optschema/internal/hcl"
	"github.com/spf13/cobra"
)

func newKindsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List registered kinds with their options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.NewConfig(app.Config{LogFormat: root.logFormat, LogLevel: root.logLevel})
			if err != nil {
				return &ExitError{Code: ExitUsage, Message: err.Error()}
			}
			a, err := app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, hcl.NewLoader())
			if err != nil {
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			}
			return a.Describe(cmd.OutOrStdout())
		},
	}
}
