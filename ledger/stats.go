// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ledger

import (
	"errors"
	"fmt"
)

// ErrInsufficientData signals a statistic requested over an entry without any
// recorded responsive samples yet.
var ErrInsufficientData = errors.New("no recorded samples")

// A statistic reduces a non-empty series of round-trip times to a single
// aggregate value. Additional statistics beyond fastest/slowest/mean plug in
// here.
type statistic func([]float64) float64

// Fastest returns the minimum recorded round-trip time of the entry at the
// given index.
func (l *Ledger) Fastest(index int) (float64, error) { return l.aggregate(index, minimum) }

// Slowest returns the maximum recorded round-trip time of the entry at the
// given index.
func (l *Ledger) Slowest(index int) (float64, error) { return l.aggregate(index, maximum) }

// Mean returns the arithmetic-mean round-trip time of the entry at the given
// index.
func (l *Ledger) Mean(index int) (float64, error) { return l.aggregate(index, mean) }

// FastestHost works like [Ledger.Fastest] for the first entry matching the
// given host string.
func (l *Ledger) FastestHost(host string) (float64, error) { return l.aggregateHost(host, minimum) }

// SlowestHost works like [Ledger.Slowest] for the first entry matching the
// given host string.
func (l *Ledger) SlowestHost(host string) (float64, error) { return l.aggregateHost(host, maximum) }

// MeanHost works like [Ledger.Mean] for the first entry matching the given
// host string.
func (l *Ledger) MeanHost(host string) (float64, error) { return l.aggregateHost(host, mean) }

// FastestAll returns one minimum per entry, in entry order; never a single
// global aggregate.
func (l *Ledger) FastestAll() ([]float64, error) { return l.aggregateAll(minimum) }

// SlowestAll returns one maximum per entry, in entry order.
func (l *Ledger) SlowestAll() ([]float64, error) { return l.aggregateAll(maximum) }

// MeanAll returns one arithmetic mean per entry, in entry order.
func (l *Ledger) MeanAll() ([]float64, error) { return l.aggregateAll(mean) }

// aggregate applies a statistic to the recorded history of a single entry.
// Unreachable observations never enter histories, so statistics only ever see
// responsive samples; an entry without any fails with [ErrInsufficientData].
func (l *Ledger) aggregate(index int, stat statistic) (float64, error) {
	e, err := l.at(index)
	if err != nil {
		return 0, err
	}
	if len(e.history) == 0 {
		return 0, fmt.Errorf("%w for %q", ErrInsufficientData, e.host)
	}
	return stat(e.history), nil
}

func (l *Ledger) aggregateHost(host string, stat statistic) (float64, error) {
	idx, err := l.IndexOf(host)
	if err != nil {
		return 0, err
	}
	return l.aggregate(idx, stat)
}

func (l *Ledger) aggregateAll(stat statistic) ([]float64, error) {
	aggregates := make([]float64, 0, len(l.entries))
	for idx := range l.entries {
		aggregate, err := l.aggregate(idx, stat)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}

func minimum(series []float64) float64 {
	min := series[0]
	for _, v := range series[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func maximum(series []float64) float64 {
	max := series[0]
	for _, v := range series[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func mean(series []float64) float64 {
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}
