// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/siemens/pingmon/throughput"

	"github.com/spf13/cobra"
)

// newThroughputCmd returns the "throughput" subcommand, downloading a
// well-known payload URL and reporting connection time and download speeds.
func newThroughputCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "throughput URL",
		Short: "measure download throughput by fetching the given http(s) URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(
				context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			probe, err := throughput.New(args[0])
			if err != nil {
				return err
			}
			result, err := probe.Measure(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "connect time: %.1f ms\n",
				float64(result.ConnectTime.Microseconds())/1000.0)
			mean, err := result.Mean()
			if err != nil {
				return err
			}
			max, _ := result.Max()
			fmt.Fprintf(cmd.OutOrStdout(), "mean download speed: %s\n", speed(mean))
			fmt.Fprintf(cmd.OutOrStdout(), "peak download speed: %s\n", speed(max))
			return nil
		},
	}
}

// speed formats a download speed in bytes per second both in KiB/s and in
// Mbit/s.
func speed(bytespersec float64) string {
	return fmt.Sprintf("%.1f KiB/s (%.2f Mbit/s)",
		bytespersec/1024.0, bytespersec*8.0/1e6)
}
