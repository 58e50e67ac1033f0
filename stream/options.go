// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package stream

import (
	"github.com/siemens/pingmon/resolve"
	"github.com/siemens/pingmon/types"
)

// config collects the construction-time-only knobs that don't end up in the
// Stream itself.
type config struct {
	resolver resolve.Resolver
	family   types.Family
}

// Option can be passed to New when creating new Stream objects.
type Option func(*Stream, *config)

// OverIPv4 forces resolving the host to an IPv4 address; construction fails
// if the host has none.
func OverIPv4() Option {
	return func(_ *Stream, cfg *config) {
		cfg.family = types.FamilyV4
	}
}

// OverIPv6 forces resolving the host to an IPv6 address; construction fails
// if the host has none.
func OverIPv6() Option {
	return func(_ *Stream, cfg *config) {
		cfg.family = types.FamilyV6
	}
}

// WithCount bounds the stream: the probe sends exactly count packets and the
// stream delivers exactly count samples before failing with [ErrClosed]. A
// count of 0 keeps the stream unbounded.
func WithCount(count uint) Option {
	return func(s *Stream, _ *config) {
		s.target.Count = count
	}
}

// LatestOnly makes an unbounded stream always deliver the most recently
// available sample, discarding buffered-but-stale ones: a slow consumer must
// not see boundlessly stale latency numbers. Bounded streams ignore this
// setting.
func LatestOnly() Option {
	return func(s *Stream, _ *config) {
		s.latest = true
	}
}

// WithoutAdaptiveInterval turns off the probe's adaptive ping interval, which
// is on by default.
func WithoutAdaptiveInterval() Option {
	return func(s *Stream, _ *config) {
		s.target.Adaptive = false
	}
}

// WithTimestamps makes the probe prefix its output lines with timestamps.
// Parsing is indifferent to this, but downstream log capturing may not be.
func WithTimestamps() Option {
	return func(s *Stream, _ *config) {
		s.target.Timestamp = true
	}
}

// WithResolver resolves the host through the specified resolver instead of
// the system resolver, such as a [resolve.Pool] talking to a specific DNS
// server.
func WithResolver(r resolve.Resolver) Option {
	return func(_ *Stream, cfg *config) {
		cfg.resolver = r
	}
}

// WithLauncher substitutes how the probe process is launched; tests use this
// to feed canned echo output into a stream.
func WithLauncher(l Launcher) Option {
	return func(s *Stream, _ *config) {
		s.launch = l
	}
}
