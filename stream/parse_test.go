// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package stream

import (
	"github.com/siemens/pingmon/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = DescribeTable("parsing per-packet echo output lines",
	func(line string, expected types.Sample) {
		Expect(parseSample([]byte(line))).To(Equal(expected))
	},
	Entry("typical reply line",
		"64 bytes from 192.0.2.1: icmp_seq=1 ttl=57 time=11.3 ms",
		types.Sample{Seq: 1, RTT: 11.3}),
	Entry("unit suffix glued onto the number",
		"64 bytes from 192.0.2.1: icmp_seq=2 ttl=57 time=11.3ms",
		types.Sample{Seq: 2, RTT: 11.3}),
	Entry("extra leading and trailing whitespace",
		"   64 bytes from 192.0.2.1: icmp_seq=7 ttl=57 time=0.061 ms   ",
		types.Sample{Seq: 7, RTT: 0.061}),
	Entry("unreachable destination",
		"From 192.0.2.254 icmp_seq=4 Destination Host Unreachable",
		types.Sample{Seq: 4, Unreachable: true}),
	Entry("timestamped reply line",
		"[1693482042.419501] 64 bytes from 2001:db8::1: icmp_seq=12 ttl=57 time=23.9 ms",
		types.Sample{Seq: 12, RTT: 23.9}),
)

var _ = DescribeTable("rejecting malformed echo output lines",
	func(line string, reason string) {
		_, err := parseSample([]byte(line))
		var malformed *MalformedLineError
		Expect(err).To(BeAssignableToTypeOf(malformed))
		Expect(err.(*MalformedLineError).Reason).To(Equal(reason))
		Expect(err.(*MalformedLineError).Line).To(Equal(line))
	},
	Entry("no icmp_seq token",
		"64 bytes from 192.0.2.1: ttl=57 time=11.3 ms",
		"no icmp_seq= token"),
	Entry("garbage sequence number",
		"64 bytes from 192.0.2.1: icmp_seq=abc ttl=57 time=11.3 ms",
		"unparseable sequence number"),
	Entry("no time token on a reachable line",
		"64 bytes from 192.0.2.1: icmp_seq=1 ttl=57",
		"no time= token"),
	Entry("garbage round-trip time",
		"64 bytes from 192.0.2.1: icmp_seq=1 ttl=57 time=ms",
		"unparseable round-trip time"),
)
