// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package stream

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/siemens/pingmon/probe"
	"github.com/siemens/pingmon/resolve"
	"github.com/siemens/pingmon/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

const banner = "PING 127.0.0.1 (127.0.0.1) 56(84) bytes of data."

func replyLine(seq int, rtt string) string {
	return "64 bytes from 127.0.0.1: icmp_seq=" + strconv.Itoa(seq) + " ttl=64 time=" + rtt + " ms"
}

var _ = Describe("measurement streams", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(2 * time.Second).WithPolling(100 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("resolves the target at construction time", NodeTimeout(10*time.Second), func(ctx context.Context) {
		var target probe.Target
		s := Successful(New(ctx, "127.0.0.1",
			WithLauncher(launching(&fakeSource{}, &target)),
			WithTimestamps()))
		defer s.Stop()
		Expect(s.Host()).To(Equal("127.0.0.1"))
		Expect(s.Addr()).To(Equal("127.0.0.1"))
		Expect(s.Target().Adaptive).To(BeTrue(), "adaptive interval defaults to on")
		Expect(s.Target().Timestamp).To(BeTrue())
	})

	It("fails construction with a ResolveError for a hopeless host", NodeTimeout(10*time.Second), func(ctx context.Context) {
		_, err := New(ctx, "no-such-name.invalid")
		var resolveErr *resolve.ResolveError
		Expect(errors.As(err, &resolveErr)).To(BeTrue(), "expected a *ResolveError, got %#v", err)
	})

	It("discards the banner line and then yields samples", NodeTimeout(10*time.Second), func(ctx context.Context) {
		src := &fakeSource{lines: []string{
			banner,
			replyLine(1, "10.0"),
			replyLine(2, "20.0"),
		}}
		s := Successful(New(ctx, "127.0.0.1", WithLauncher(launching(src, nil))))
		defer s.Stop()
		Expect(s.Next()).To(Equal(types.Sample{Seq: 1, RTT: 10.0}))
		Expect(s.Next()).To(Equal(types.Sample{Seq: 2, RTT: 20.0}))
	})

	It("yields unreachable observations as samples, not errors", NodeTimeout(10*time.Second), func(ctx context.Context) {
		src := &fakeSource{lines: []string{
			banner,
			"From 127.0.0.1 icmp_seq=1 Destination Host Unreachable",
		}}
		s := Successful(New(ctx, "127.0.0.1", WithLauncher(launching(src, nil))))
		defer s.Stop()
		Expect(s.Next()).To(Equal(types.Sample{Seq: 1, Unreachable: true}))
	})

	It("keeps running after a malformed line, leaving recovery to the caller", NodeTimeout(10*time.Second), func(ctx context.Context) {
		src := &fakeSource{lines: []string{
			banner,
			"ping: sendmsg: Network is down",
			replyLine(3, "30.0"),
		}}
		s := Successful(New(ctx, "127.0.0.1", WithLauncher(launching(src, nil))))
		defer s.Stop()
		_, err := s.Next()
		var malformed *MalformedLineError
		Expect(errors.As(err, &malformed)).To(BeTrue(), "expected a *MalformedLineError, got %#v", err)
		Expect(s.Next()).To(Equal(types.Sample{Seq: 3, RTT: 30.0}))
	})

	Context("bounded mode", func() {

		It("delivers exactly the requested packet count, then closes", NodeTimeout(10*time.Second), func(ctx context.Context) {
			src := &fakeSource{lines: []string{
				banner,
				replyLine(1, "10.0"),
				replyLine(2, "20.0"),
				replyLine(3, "30.0"),
				"--- 127.0.0.1 ping statistics ---", // never to be read in bounded mode
			}}
			var target probe.Target
			s := Successful(New(ctx, "127.0.0.1",
				WithCount(3), WithLauncher(launching(src, &target))))
			for seq := 1; seq <= 3; seq++ {
				sample := Successful(s.Next())
				Expect(sample.Seq).To(Equal(seq))
			}
			_, err := s.Next()
			Expect(err).To(MatchError(ErrClosed))
			Expect(src.terminated()).To(BeTrue(), "exhaustion must terminate the probe")
			Expect(target.Count).To(Equal(uint(3)), "the packet limit must reach the probe invocation")
		})

		It("ignores latest-only skipping when bounded", NodeTimeout(10*time.Second), func(ctx context.Context) {
			src := &fakeSource{
				lines: []string{
					banner,
					replyLine(1, "10.0"),
					replyLine(2, "20.0"),
				},
				buffered: 3,
			}
			s := Successful(New(ctx, "127.0.0.1",
				WithCount(2), LatestOnly(), WithLauncher(launching(src, nil))))
			defer s.Stop()
			Expect(s.Next()).To(Equal(types.Sample{Seq: 1, RTT: 10.0}),
				"bounded mode must read exactly one line per call")
		})

	})

	Context("latest-only mode", func() {

		It("returns the most recently buffered sample, dropping stale ones for good", NodeTimeout(10*time.Second), func(ctx context.Context) {
			src := &fakeSource{
				lines: []string{
					banner,
					replyLine(1, "10.0"),
					replyLine(2, "20.0"),
					replyLine(3, "30.0"),
					replyLine(4, "40.0"),
				},
				buffered: 5, // everything above already sits in the buffer
			}
			s := Successful(New(ctx, "127.0.0.1",
				LatestOnly(), WithLauncher(launching(src, nil))))
			defer s.Stop()
			Expect(s.Next()).To(Equal(types.Sample{Seq: 4, RTT: 40.0}),
				"the freshest buffered sample wins")
			_, err := s.Next()
			Expect(err).To(MatchError(ErrClosed),
				"dropped samples must never resurface")
		})

		It("reads exactly one line when nothing further is buffered", NodeTimeout(10*time.Second), func(ctx context.Context) {
			src := &fakeSource{lines: []string{
				banner,
				replyLine(1, "10.0"),
				replyLine(2, "20.0"),
			}}
			s := Successful(New(ctx, "127.0.0.1",
				LatestOnly(), WithLauncher(launching(src, nil))))
			defer s.Stop()
			Expect(s.Next()).To(Equal(types.Sample{Seq: 1, RTT: 10.0}))
			Expect(s.Next()).To(Equal(types.Sample{Seq: 2, RTT: 20.0}))
		})

	})

	Context("stopping", func() {

		It("closes the stream on end of probe output", NodeTimeout(10*time.Second), func(ctx context.Context) {
			src := &fakeSource{lines: []string{banner}}
			s := Successful(New(ctx, "127.0.0.1", WithLauncher(launching(src, nil))))
			_, err := s.Next()
			Expect(err).To(MatchError(ErrClosed))
			Expect(src.terminated()).To(BeTrue())
		})

		It("tolerates stopping a never-started stream", NodeTimeout(10*time.Second), func(ctx context.Context) {
			launched := false
			s := Successful(New(ctx, "127.0.0.1",
				WithLauncher(func(probe.Target) (LineSource, error) {
					launched = true
					return &fakeSource{}, nil
				})))
			s.Stop()
			s.Stop()
			Expect(launched).To(BeFalse(), "stopping must not launch a probe")
			_, err := s.Next()
			Expect(err).To(MatchError(ErrClosed))
		})

		It("tolerates stopping twice after running", NodeTimeout(10*time.Second), func(ctx context.Context) {
			src := &fakeSource{lines: []string{banner, replyLine(1, "10.0")}}
			s := Successful(New(ctx, "127.0.0.1", WithLauncher(launching(src, nil))))
			Expect(s.Next()).To(Equal(types.Sample{Seq: 1, RTT: 10.0}))
			s.Stop()
			s.Stop()
			_, err := s.Next()
			Expect(err).To(MatchError(ErrClosed))
		})

	})

})
