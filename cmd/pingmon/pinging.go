// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/siemens/pingmon/ledger"
	"github.com/siemens/pingmon/resolve"
	"github.com/siemens/pingmon/stream"

	"github.com/gosuri/uilive"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// measureAndReport constructs a ledger for the given hosts and then keeps
// pulling one sample per host per round, live-rendering the running
// statistics until the sampling ends (bounded mode ran out of packets, or
// ctrl-C).
func measureAndReport(ctx context.Context, hosts []string) error {
	// Make sure that not a single probe process survives us, whether we end
	// orderly or get interrupted.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var resolver resolve.Resolver = resolve.System()
	if *dnsServer != "" {
		pool, err := resolve.NewPool(ctx, int(*workerNumber), &dns.Client{}, *dnsServer)
		if err != nil {
			return fmt.Errorf("cannot connect to DNS server %q: %w", *dnsServer, err)
		}
		defer pool.StopWait()
		resolver = pool
	}

	sopts := []stream.Option{stream.WithResolver(resolver)}
	if *forceIPv4 {
		sopts = append(sopts, stream.OverIPv4())
	}
	if *forceIPv6 {
		sopts = append(sopts, stream.OverIPv6())
	}
	if !*adaptive {
		sopts = append(sopts, stream.WithoutAdaptiveInterval())
	}
	if *timestamps {
		sopts = append(sopts, stream.WithTimestamps())
	}
	if *packetCount > 0 {
		sopts = append(sopts, stream.WithCount(*packetCount))
	}
	lopts := []ledger.Option{ledger.WithStreamOptions(sopts...)}
	if *latest {
		lopts = append(lopts, ledger.LatestOnly())
	}
	l, err := ledger.New(ctx, hosts, lopts...)
	if err != nil {
		return err
	}
	defer l.StopAll()

	board := newScoreboard(l)

	// One sampling goroutine drives the whole ledger round-robin; NextAll
	// blocks, so cancellation works by killing the probes, which in turn ends
	// their output streams.
	samplingDone := make(chan struct{})
	go func() {
		defer close(samplingDone)
		for {
			samples, err := l.NextAll()
			if err != nil {
				if !errors.Is(err, stream.ErrClosed) {
					logrus.WithError(err).Error("sampling broke down")
				}
				return
			}
			board.Record(samples)
		}
	}()
	go func() {
		<-ctx.Done()
		l.StopAll()
	}()

	// Dunno what uilive's background updating mode using Start() is good for?
	// It may trigger anytime with the rendering into the buffer not yet
	// complete, thus making the terminal output very flickery. So we avoid
	// Start() and instead trigger an explicit flush to the terminal after
	// having completed the rendering.
	term := uilive.New()
	renderer := newRenderer(term)
	renderData(term, renderer, board)
	ticker := time.NewTicker(*refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			renderData(term, renderer, board)
		case <-samplingDone:
			renderData(term, renderer, board)
			return nil
		}
	}
}

// renderData takes the current scoreboard contents and then renders (and
// flushes) them to the terminal.
func renderData(term *uilive.Writer, r *renderer, board *scoreboard) {
	r.Render(board.Rows())
	term.Flush()
}
