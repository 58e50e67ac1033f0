// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package probe

import "strconv"

// Target describes one external echo probe to be launched: the resolved IP
// address to ping together with the invocation options fixed at stream
// construction time. Target values are immutable once created.
type Target struct {
	Addr      string // resolved IP address in textual form, IPv4 or IPv6
	IPv6      bool   // selects the IPv6 variant of the echo utility
	Adaptive  bool   // adaptive ping interval ("-A")
	Timestamp bool   // print timestamps ("-D")
	Count     uint   // total number of packets to send; 0 means unbounded
}

// Binary returns the name of the echo utility matching the target's address
// family.
func (t Target) Binary() string {
	if t.IPv6 {
		return "ping6"
	}
	return "ping"
}

// Args returns the deterministic argument list for invoking the echo utility,
// with the target address always appended last.
func (t Target) Args() []string {
	args := make([]string, 0, 6)
	if t.Adaptive {
		args = append(args, "-A")
	}
	if t.Count > 0 {
		args = append(args, "-c", strconv.FormatUint(uint64(t.Count), 10))
	}
	if t.Timestamp {
		args = append(args, "-D")
	}
	return append(args, t.Addr)
}
