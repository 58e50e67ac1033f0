// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	packetCount  *uint
	latest       *bool
	adaptive     *bool
	timestamps   *bool
	forceIPv4    *bool
	forceIPv6    *bool
	dnsServer    *string
	workerNumber *uint
	refresh      *time.Duration
	debug        *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "pingmon [flags] host [host...]",
		Short:   "pingmon measures round-trip latency to one or more hosts by driving the OS ping utility",
		Version: "0.9",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *forceIPv4 && *forceIPv6 {
				return fmt.Errorf("--ipv4 and --ipv6 are mutually exclusive")
			}
			if *workerNumber < 1 || *workerNumber > 10 {
				return fmt.Errorf("--workers out of range [1..10]")
			}
			if *refresh < 10*time.Millisecond {
				return fmt.Errorf("--refresh must be at least 10ms")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if *debug {
				logrus.SetLevel(logrus.DebugLevel)
				logrus.Debug("debug logging enabled")
			}
			return measureAndReport(context.Background(), args)
		},
	}
	// Sets up the flags.
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	packetCount = rootCmd.Flags().UintP(
		"count", "c", 0, "number of packets per host; 0 keeps measuring until interrupted")
	latest = rootCmd.Flags().Bool(
		"latest", false, "always show the freshest sample, dropping stale buffered ones")
	adaptive = rootCmd.Flags().Bool(
		"adaptive", true, "use the ping utility's adaptive interval")
	timestamps = rootCmd.Flags().Bool(
		"timestamps", false, "make the ping utility emit timestamps")
	forceIPv4 = rootCmd.Flags().BoolP(
		"ipv4", "4", false, "measure over IPv4 only")
	forceIPv6 = rootCmd.Flags().BoolP(
		"ipv6", "6", false, "measure over IPv6 only")
	dnsServer = rootCmd.Flags().String(
		"dns", "", "resolve hosts via this DNS server (host:port) instead of the system resolver")
	workerNumber = rootCmd.PersistentFlags().Uint(
		"workers", 3, "number of DNS resolver workers")
	refresh = rootCmd.Flags().Duration(
		"refresh", 250*time.Millisecond, "terminal refresh interval")
	rootCmd.AddCommand(newThroughputCmd())
	return
}
