// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"errors"
	"time"

	"github.com/specialistvlad/optschema/internal/app"
	"github.com/specialistvlad/optschema/internal/hcl"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	probe        bool
	probeTimeout time.Duration
	workers      int
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Construct every instance declared in .hcl files and report the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.NewConfig(app.Config{
				Paths:        args,
				LogFormat:    root.logFormat,
				LogLevel:     root.logLevel,
				Probe:        opts.probe,
				ProbeTimeout: opts.probeTimeout,
				WorkerCount:  opts.workers,
			})
			if err != nil {
				return &ExitError{Code: ExitUsage, Message: err.Error()}
			}

			a, err := app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, hcl.NewLoader())
			if err != nil {
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			}

			if err := a.Run(cmd.Context()); err != nil {
				if errors.Is(err, app.ErrCheckFailed) {
					return &ExitError{Code: ExitFailure, Message: "check failed: " + err.Error()}
				}
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&opts.probe, "probe", false, "exercise instances that support it (performs network calls)")
	fs.DurationVar(&opts.probeTimeout, "probe-timeout", app.DefaultProbeTimeout, "time limit for each probe")
	fs.IntVarP(&opts.workers, "workers", "w", app.DefaultWorkerCount, "number of instances constructed concurrently")
	return cmd
}
