// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"sync"

	"github.com/siemens/pingmon/ledger"
	"github.com/siemens/pingmon/types"

	"github.com/sirupsen/logrus"
)

// hostRow is the display state of one measured host: the most recent sample
// plus the running statistics over its responsive history.
type hostRow struct {
	Host        string
	Addr        string
	Last        types.Sample
	Seen        int // samples observed so far
	Unreachable int // of which went unanswered
	Fastest     float64
	Slowest     float64
	Mean        float64
	HasStats    bool // false until the first responsive sample
}

// scoreboard tracks per-host display state fed by the sampling goroutine and
// consumed by the rendering goroutine.
type scoreboard struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	rows   []hostRow
}

// newScoreboard seeds one row per ledger entry, in entry order.
func newScoreboard(l *ledger.Ledger) *scoreboard {
	rows := make([]hostRow, 0, l.Len())
	for idx, host := range l.Hosts() {
		addr, _ := l.Addr(idx)
		rows = append(rows, hostRow{Host: host, Addr: addr})
	}
	return &scoreboard{
		ledger: l,
		rows:   rows,
	}
}

// Record folds one round of samples (in entry order) into the display state.
// It must be called from the goroutine driving the ledger, as it reads the
// ledger's statistics.
func (b *scoreboard) Record(samples []types.Sample) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for idx, sample := range samples {
		row := &b.rows[idx]
		row.Last = sample
		row.Seen++
		logrus.WithFields(logrus.Fields{
			"host": row.Host,
			"seq":  sample.Seq,
			"rtt":  sample.RTT,
			"lost": sample.Unreachable,
		}).Debug("sample")
		if sample.Unreachable {
			row.Unreachable++
			continue
		}
		// All three statistics operate over the very same history this
		// responsive sample just entered, so none of them can fail anymore.
		row.Fastest, _ = b.ledger.Fastest(idx)
		row.Slowest, _ = b.ledger.Slowest(idx)
		row.Mean, _ = b.ledger.Mean(idx)
		row.HasStats = true
	}
}

// Rows returns a snapshot of all display rows, in entry order.
func (b *scoreboard) Rows() []hostRow {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := make([]hostRow, len(b.rows))
	copy(rows, b.rows)
	return rows
}
