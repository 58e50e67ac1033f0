// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
)

// renderer renders the terminal scoreboard, based on the host rows passed to
// its Render method.
type renderer struct {
	w io.Writer
}

// newRenderer returns a renderer object rendering to the specified io.Writer.
func newRenderer(w io.Writer) *renderer {
	return &renderer{
		w: w,
	}
}

// Render the given host rows as a table, one host per row.
func (r *renderer) Render(rows []hostRow) {
	// For neat display, determine the lengths of the longest host name and
	// address in the data to display, so that the columns don't zig-zag
	// around between refreshes.
	hostwidth := len("HOST")
	addrwidth := len("ADDRESS")
	for _, row := range rows {
		if l := len(row.Host); l > hostwidth {
			hostwidth = l
		}
		if l := len(row.Addr); l > addrwidth {
			addrwidth = l
		}
	}
	fmt.Fprintln(r.w, headerStyle.Styled(fmt.Sprintf(
		"%-*s  %-*s  %12s  %9s  %9s  %9s  %6s  %6s",
		hostwidth, "HOST", addrwidth, "ADDRESS",
		"LAST", "FASTEST", "MEAN", "SLOWEST", "RECV", "LOSS")))
	for _, row := range rows {
		r.renderRow(hostwidth, addrwidth, row)
	}
}

// renderRow renders a single host's latest sample and running statistics.
func (r *renderer) renderRow(hostwidth, addrwidth int, row hostRow) {
	fmt.Fprintf(r.w, "%-*s  %-*s  ", hostwidth, row.Host, addrwidth, row.Addr)
	switch {
	case row.Seen == 0:
		fmt.Fprint(r.w, waitingSampleStyle.Styled(fmt.Sprintf("%12s", "waiting...")))
	case row.Last.Unreachable:
		fmt.Fprint(r.w, unreachableSampleStyle.Styled(fmt.Sprintf("%12s", "unreachable")))
	default:
		fmt.Fprint(r.w, reachableSampleStyle.Styled(
			fmt.Sprintf("%9.1f ms", row.Last.RTT)))
	}
	if row.HasStats {
		fmt.Fprintf(r.w, "  %6.1f ms  %6.1f ms  %6.1f ms",
			row.Fastest, row.Mean, row.Slowest)
	} else {
		fmt.Fprintf(r.w, "  %9s  %9s  %9s", "-", "-", "-")
	}
	received := row.Seen - row.Unreachable
	loss := "-"
	if row.Seen > 0 {
		loss = fmt.Sprintf("%.0f%%", float64(row.Unreachable)*100.0/float64(row.Seen))
	}
	fmt.Fprintf(r.w, "  %6d  %6s\n", received, loss)
}
