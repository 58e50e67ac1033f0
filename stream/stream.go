// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/siemens/pingmon/probe"
	"github.com/siemens/pingmon/resolve"
	"github.com/siemens/pingmon/types"
)

// ErrClosed signals a Next call on a stream that has already been stopped or
// exhausted. It is a normal, expected terminal condition of every bounded
// stream, not a crash.
var ErrClosed = errors.New("measurement stream closed")

// LineSource is the byte-oriented line source a Stream pulls echo utility
// output from: a blocking line read plus a non-blocking count of complete
// lines already buffered, plus idempotent termination of whatever produces
// the lines. [probe.Probe] is the production implementation.
type LineSource interface {
	ReadLine() ([]byte, error)
	BufferedLines() int
	Terminate()
}

// Launcher starts the external probe process for a target and hands back its
// output line source. Tests substitute their own launchers to feed canned
// output into a Stream.
type Launcher func(probe.Target) (LineSource, error)

// streamState is one of notStarted, running and stopped; stopped is terminal.
type streamState int

const (
	notStarted streamState = iota // no probe process launched yet.
	running                       // probe process launched, banner consumed.
	stopped                       // exhausted, failed, or explicitly stopped.
)

// Stream turns the line-oriented output of one external echo probe into a
// lazy, potentially-infinite sequence of [types.Sample] observations.
//
// A Stream is a single-owner object: Next must not be called concurrently
// from multiple goroutines. Stop, in contrast, may be called from a different
// goroutine to tear the probe process down; this unblocks a pending Next only
// indirectly, by the killed process closing its output.
type Stream struct {
	host   string
	target probe.Target
	latest bool
	launch Launcher

	mu        sync.Mutex // guards state and source against a concurrent Stop
	state     streamState
	source    LineSource
	remaining uint // packets left to deliver; meaningful in bounded mode only
}

// New resolves the given host into one concrete address and returns a Stream
// ready to measure it. The probe process is not launched before the first
// call to Next. Resolution failures surface as [resolve.ResolveError] values.
//
// The stream can be configured during creation using several options:
//   - [OverIPv4], [OverIPv6]
//   - [WithCount]
//   - [LatestOnly]
//   - [WithoutAdaptiveInterval]
//   - [WithTimestamps]
//   - [WithResolver]
//   - [WithLauncher]
func New(ctx context.Context, host string, options ...Option) (*Stream, error) {
	s := &Stream{
		host: host,
		target: probe.Target{
			Adaptive: true,
		},
		launch: launchProbe,
	}
	cfg := config{resolver: resolve.System(), family: types.FamilyAny}
	for _, opt := range options {
		opt(s, &cfg)
	}
	addr, err := cfg.resolver.Resolve(ctx, host, cfg.family)
	if err != nil {
		return nil, err
	}
	s.target.Addr = addr.IP
	s.target.IPv6 = addr.IPv6
	s.remaining = s.target.Count
	return s, nil
}

// Host returns the host name (or address literal) this stream was constructed
// for.
func (s *Stream) Host() string { return s.host }

// Addr returns the resolved address being measured.
func (s *Stream) Addr() string { return s.target.Addr }

// Target returns the immutable probe invocation this stream drives.
func (s *Stream) Target() probe.Target { return s.target }

// Next blocks until the probe's next output line has been parsed and returns
// the resulting sample. The first call launches the probe process and
// discards its banner line. After the stream has been stopped or a bounded
// stream has delivered its full packet count, Next fails with [ErrClosed].
//
// A [MalformedLineError] leaves the stream running: the stream should be
// considered unreliable afterwards, but the recovery policy belongs to the
// caller.
func (s *Stream) Next() (types.Sample, error) {
	src, err := s.advance()
	if err != nil {
		return types.Sample{}, err
	}
	if s.target.Count > 0 && s.remaining == 0 {
		s.Stop()
		return types.Sample{}, ErrClosed
	}
	line, err := src.ReadLine()
	if err != nil {
		s.Stop()
		if errors.Is(err, io.EOF) {
			return types.Sample{}, ErrClosed
		}
		return types.Sample{}, fmt.Errorf("reading echo output: %w", err)
	}
	if s.target.Count == 0 && s.latest {
		// Freshness beats completeness: while the source already holds
		// further complete lines, the line in hand is stale, so drop it and
		// take the younger one.
		for src.BufferedLines() > 0 {
			fresher, err := src.ReadLine()
			if err != nil {
				break
			}
			line = fresher
		}
	}
	if s.target.Count > 0 {
		s.remaining--
	}
	return parseSample(line)
}

// advance launches the probe process on the first call and eats the banner
// line; it then hands out the line source for this Next call.
func (s *Stream) advance() (LineSource, error) {
	s.mu.Lock()
	switch s.state {
	case stopped:
		s.mu.Unlock()
		return nil, ErrClosed
	case running:
		src := s.source
		s.mu.Unlock()
		return src, nil
	}
	src, err := s.launch(s.target)
	if err != nil {
		s.state = stopped
		s.mu.Unlock()
		return nil, err
	}
	s.source = src
	s.state = running
	s.mu.Unlock()
	// The utility's first output line is its banner and carries no sample
	// data.
	if _, err := src.ReadLine(); err != nil {
		s.Stop()
		return nil, ErrClosed
	}
	return src, nil
}

// Stop terminates the underlying probe process, if one was ever started.
// Stopping a never-started or already-stopped stream is a no-op; a stopped
// stream never owns a running process.
func (s *Stream) Stop() {
	s.mu.Lock()
	src := s.source
	s.state = stopped
	s.mu.Unlock()
	if src != nil {
		src.Terminate()
	}
}

// launchProbe is the production Launcher, spawning a real echo utility
// process.
func launchProbe(target probe.Target) (LineSource, error) {
	return probe.Launch(target)
}
