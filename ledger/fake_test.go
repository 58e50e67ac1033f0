// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ledger

import (
	"fmt"
	"io"
	"sync"

	"github.com/siemens/pingmon/probe"
	"github.com/siemens/pingmon/stream"
)

// scriptedSource replays canned echo probe output for one target.
type scriptedSource struct {
	mu           sync.Mutex
	lines        []string
	pos          int
	terminations int
}

func (s *scriptedSource) ReadLine() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.lines) {
		return nil, io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return []byte(line), nil
}

func (s *scriptedSource) BufferedLines() int { return 0 }

func (s *scriptedSource) Terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terminations++
}

func (s *scriptedSource) terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminations > 0
}

// probeFarm hands out scripted probe output per target address, so a whole
// ledger can be driven without a single real process.
type probeFarm struct {
	mu       sync.Mutex
	scripts  map[string][]string // address -> per-packet lines (banner gets prepended)
	launched map[string][]*scriptedSource
}

func newProbeFarm() *probeFarm {
	return &probeFarm{
		scripts:  map[string][]string{},
		launched: map[string][]*scriptedSource{},
	}
}

// script registers the per-packet output lines for an address.
func (f *probeFarm) script(addr string, replies ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[addr] = replies
}

// launcher returns a stream.Launcher serving this farm's scripts.
func (f *probeFarm) launcher() stream.Launcher {
	return func(target probe.Target) (stream.LineSource, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		replies, ok := f.scripts[target.Addr]
		if !ok {
			return nil, fmt.Errorf("no script for %q", target.Addr)
		}
		src := &scriptedSource{
			lines: append([]string{"PING " + target.Addr + " 56(84) bytes of data."}, replies...),
		}
		f.launched[target.Addr] = append(f.launched[target.Addr], src)
		return src, nil
	}
}

// sources returns all sources launched for an address so far.
func (f *probeFarm) sources(addr string) []*scriptedSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.launched[addr]
}

func reply(addr string, seq int, rtt float64) string {
	return fmt.Sprintf("64 bytes from %s: icmp_seq=%d ttl=64 time=%.1f ms", addr, seq, rtt)
}

func unreachable(addr string, seq int) string {
	return fmt.Sprintf("From %s icmp_seq=%d Destination Host Unreachable", addr, seq)
}
