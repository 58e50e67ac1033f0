/*
Package stream implements the measurement stream at the heart of pingmon: a
pull-based state machine turning the raw diagnostic text of one external echo
probe into discrete round-trip samples.

	        +---+
	host -->| S +-->Next() Sample
	        +---+

A [Stream] starts out not-started; the first [Stream.Next] launches the probe
process and unconditionally discards its banner line. Every further Next
blocks until a full per-packet line is available, parses it, and yields a
[types.Sample]. A stream is either bounded, delivering exactly the requested
packet count and then failing with [ErrClosed], or unbounded. [Stream.Stop]
terminates the probe process and is idempotent; a stopped stream is terminal.

# Latest-only mode

An unbounded stream created with [LatestOnly] trades completeness for
freshness: after reading a line, as long as the probe's output buffer still
holds at least one further complete line, the line in hand is discarded for
the younger one. A consumer slower than its probe thus always observes the
most recently available sample rather than an ever-staler backlog. This is an
explicit buffered-line-count check against the byte source (see
[LineSource]), not a side effect of string splitting.

# Concurrency

Each stream owns exactly one probe process and its unread-line buffer, and is
a strictly single-owner object: callers must serialize Next. Multiple streams
are fully independent and may be driven concurrently, one goroutine per
stream. Next has no timeout of its own; a silent target blocks its caller
until Stop (possibly from another goroutine) kills the probe and its output
closes.
*/
package stream
