// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package probe

import (
	"bufio"
	"bytes"
	"io"
)

// lineReader reads a byte stream line by line and can additionally tell how
// many complete lines are already sitting in its buffer, without consuming
// them. The latter is what the latest-only skip policy in the stream package
// builds upon: it has to be an explicit buffered-line-count check against the
// byte source, never a blocking read.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its trailing newline, blocking until
// a full line is available or the stream ends. A final unterminated line is
// returned as-is, with the subsequent call reporting io.EOF.
func (lr *lineReader) ReadLine() ([]byte, error) {
	line, err := lr.r.ReadBytes('\n')
	if err != nil {
		if len(line) > 0 {
			return line, nil
		}
		return nil, err
	}
	return bytes.TrimSuffix(line, []byte("\n")), nil
}

// BufferedLines returns the number of complete (newline-terminated) lines
// currently buffered. It never reads from the underlying stream, so it never
// blocks.
func (lr *lineReader) BufferedLines() int {
	n := lr.r.Buffered()
	if n == 0 {
		return 0
	}
	buffered, _ := lr.r.Peek(n)
	return bytes.Count(buffered, []byte("\n"))
}
