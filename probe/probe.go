// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package probe

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
)

// ErrUnsupportedPlatform signals that no compatible echo utility and argument
// convention is known for the host platform, so no probe process can be
// launched at all.
var ErrUnsupportedPlatform = errors.New("no compatible ping utility known for this platform")

// Probe owns one external echo utility process bound to one target address.
// It exposes the process standard output as a line source with one-line
// lookahead, plus an idempotent termination operation.
//
// A Probe is meant to be driven by a single owner; see the stream package for
// the serialization contract.
type Probe struct {
	cmd      *exec.Cmd
	lines    *lineReader
	killOnce sync.Once
}

// Launch spawns the external echo utility for the given target and connects
// to its standard output. On platforms without a known compatible echo
// utility Launch fails with [ErrUnsupportedPlatform] instead of spawning
// anything.
func Launch(target Target) (*Probe, error) {
	// The iputils argument convention assumed here does not translate to the
	// Windows ping implementation.
	if runtime.GOOS == "windows" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
	}
	cmd := exec.Command(target.Binary(), target.Args()...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s output: %w", target.Binary(), err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("cannot launch %s: %w", target.Binary(), err)
	}
	return &Probe{
		cmd:   cmd,
		lines: newLineReader(stdout),
	}, nil
}

// ReadLine blocks until the next full output line of the echo utility is
// available and returns it without its trailing newline. When the process
// exits and its output drains, ReadLine returns [io.EOF].
func (p *Probe) ReadLine() ([]byte, error) {
	return p.lines.ReadLine()
}

// BufferedLines returns the number of complete lines already buffered and not
// yet consumed, without blocking and without consuming anything.
func (p *Probe) BufferedLines() int {
	return p.lines.BufferedLines()
}

// Terminate kills the probe process. It is safe to call Terminate multiple
// times as well as on an already-exited process; a double stop is an
// expected, non-exceptional path and never fails.
func (p *Probe) Terminate() {
	p.killOnce.Do(func() {
		_ = p.cmd.Process.Kill() // swallow "already exited"
		go func() {
			_ = p.cmd.Wait() // reap, and release the stdout pipe
		}()
	})
}
