// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/siemens/pingmon/stream"
	"github.com/siemens/pingmon/types"
)

// ErrUnknownAddress signals a host/address selector matching no ledger entry.
var ErrUnknownAddress = errors.New("no ledger entry for address")

// ErrIndexOutOfRange signals an entry index outside the ledger's current
// bounds. Removal shifts subsequent indices down, so callers holding on to
// indices across a Remove must re-resolve them by address.
var ErrIndexOutOfRange = errors.New("ledger index out of range")

// entry is one measured target: the host string it was created from, its
// live measurement stream, and the responsive round-trip times observed so
// far.
type entry struct {
	host    string
	stream  *stream.Stream
	history []float64
}

// Ledger is an ordered collection of measured targets, addressable by
// zero-based index as well as by host string (first match wins). Advancing an
// entry pulls the next sample from its stream and records the round-trip
// time of responsive samples into the entry's history, over which the
// statistics in this package then operate.
//
// A Ledger inherits the single-owner discipline of its streams: drive one
// ledger from one goroutine at a time.
type Ledger struct {
	entries []*entry
}

// Option can be passed to New when creating new Ledger objects.
type Option func(*config)

type config struct {
	latest        bool
	streamOptions []stream.Option
}

// LatestOnly puts every stream of the ledger into latest-only mode; see
// [stream.LatestOnly]. The setting is uniform for the whole ledger.
func LatestOnly() Option {
	return func(cfg *config) {
		cfg.latest = true
	}
}

// WithStreamOptions passes the given options through to every measurement
// stream the ledger constructs, such as [stream.WithResolver] or
// [stream.OverIPv6].
func WithStreamOptions(options ...stream.Option) Option {
	return func(cfg *config) {
		cfg.streamOptions = append(cfg.streamOptions, options...)
	}
}

// New constructs a ledger measuring the given hosts, in order. Duplicate
// hosts are allowed and tracked as distinct entries. Each host is resolved
// and given its own measurement stream; if any host fails, the streams
// already constructed are stopped again and New fails as a whole.
func New(ctx context.Context, hosts []string, options ...Option) (*Ledger, error) {
	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}
	l := &Ledger{entries: make([]*entry, 0, len(hosts))}
	for _, host := range hosts {
		opts := append([]stream.Option{}, cfg.streamOptions...)
		if cfg.latest {
			opts = append(opts, stream.LatestOnly())
		}
		s, err := stream.New(ctx, host, opts...)
		if err != nil {
			l.StopAll()
			return nil, fmt.Errorf("cannot measure %q: %w", host, err)
		}
		l.entries = append(l.entries, &entry{host: host, stream: s})
	}
	return l, nil
}

// Len returns the number of entries currently in the ledger.
func (l *Ledger) Len() int { return len(l.entries) }

// Hosts returns the host strings of all entries, in entry order.
func (l *Ledger) Hosts() []string {
	hosts := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		hosts = append(hosts, e.host)
	}
	return hosts
}

// Addr returns the resolved address of the entry at the given index.
func (l *Ledger) Addr(index int) (string, error) {
	e, err := l.at(index)
	if err != nil {
		return "", err
	}
	return e.stream.Addr(), nil
}

// IndexOf returns the index of the first entry created for the given host
// string, or fails with [ErrUnknownAddress].
func (l *Ledger) IndexOf(host string) (int, error) {
	for idx, e := range l.entries {
		if e.host == host {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAddress, host)
}

// Next advances the entry at the given index by one sample, recording a
// responsive sample's round-trip time into the entry's history, and returns
// the sample.
func (l *Ledger) Next(index int) (types.Sample, error) {
	e, err := l.at(index)
	if err != nil {
		return types.Sample{}, err
	}
	sample, err := e.stream.Next()
	if err != nil {
		return types.Sample{}, err
	}
	if sample.Responsive() {
		e.history = append(e.history, sample.RTT)
	}
	return sample, nil
}

// NextHost advances the first entry matching the given host string; see
// [Ledger.Next].
func (l *Ledger) NextHost(host string) (types.Sample, error) {
	idx, err := l.IndexOf(host)
	if err != nil {
		return types.Sample{}, err
	}
	return l.Next(idx)
}

// NextAll advances every entry by one sample, in entry order, and returns the
// samples in entry order. This is round-robin sampling, one target after
// another, and deliberately not simultaneous polling: callers needing
// synchronized cross-host sampling have to drive the per-target streams
// concurrently themselves.
func (l *Ledger) NextAll() ([]types.Sample, error) {
	samples := make([]types.Sample, 0, len(l.entries))
	for idx := range l.entries {
		sample, err := l.Next(idx)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// History returns a copy of the responsive round-trip times recorded so far
// for the entry at the given index.
func (l *Ledger) History(index int) ([]float64, error) {
	e, err := l.at(index)
	if err != nil {
		return nil, err
	}
	history := make([]float64, len(e.history))
	copy(history, e.history)
	return history, nil
}

// Remove stops the stream of the entry at the given index and then evicts the
// entry. The indices of all subsequent entries shift down by one; this is a
// documented contract, not an accident, so callers holding stale indices
// across a Remove must re-resolve them by address.
func (l *Ledger) Remove(index int) error {
	e, err := l.at(index)
	if err != nil {
		return err
	}
	e.stream.Stop()
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return nil
}

// RemoveHost removes the first entry matching the given host string; see
// [Ledger.Remove].
func (l *Ledger) RemoveHost(host string) error {
	idx, err := l.IndexOf(host)
	if err != nil {
		return err
	}
	return l.Remove(idx)
}

// StopAll stops every stream in the ledger, tolerating entries that have
// already stopped on their own. It must be called on orderly shutdown as
// well as on abnormal termination, so that no probe process outlives the
// program driving it.
func (l *Ledger) StopAll() {
	for _, e := range l.entries {
		e.stream.Stop()
	}
}

func (l *Ledger) at(index int) (*entry, error) {
	if index < 0 || index >= len(l.entries) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(l.entries))
	}
	return l.entries[index], nil
}
