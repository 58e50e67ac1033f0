// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Sample is one parsed observation yielded by a measurement stream: the ICMP
// sequence number together with the round-trip time reported by the external
// echo utility. Samples arrive in non-decreasing sequence order per target.
type Sample struct {
	Seq         int     `json:"seq"` // ICMP sequence number
	RTT         float64 `json:"rtt"` // round-trip time in milliseconds; meaningless if Unreachable
	Unreachable bool    `json:"unreachable"`
}

// Responsive returns true if the sample carries an actual round-trip time, as
// opposed to recording that the target was unreachable for this sequence
// number. An unreachable observation is a valid, expected outcome and not an
// error.
func (s Sample) Responsive() bool {
	return !s.Unreachable
}

// String returns the clear-text representation of a Sample.
func (s Sample) String() string {
	if s.Unreachable {
		return fmt.Sprintf("seq %d: unreachable", s.Seq)
	}
	return fmt.Sprintf("seq %d: %.3fms", s.Seq, s.RTT)
}
