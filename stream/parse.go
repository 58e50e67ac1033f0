// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package stream

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/siemens/pingmon/types"
)

// MalformedLineError reports an echo output line that doesn't follow the
// expected per-packet format. The stream producing it stays running, but
// should be considered unreliable from here on.
type MalformedLineError struct {
	Line   string // the offending line, verbatim
	Reason string
}

// Error returns the clear-text representation of a MalformedLineError.
func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed echo output line %q: %s", e.Line, e.Reason)
}

var (
	seqPrefix        = []byte("icmp_seq=")
	timePrefix       = []byte("time=")
	unreachableToken = []byte("Unreachable")
)

// parseSample parses one per-packet echo utility output line into a sample.
// The line is whitespace-tokenized; it must carry an icmp_seq=<int> token and
// either the literal Unreachable token or a time=<float> token, where a unit
// suffix may be glued right onto the number ("time=11.3ms").
func parseSample(line []byte) (types.Sample, error) {
	fields := bytes.Fields(line)
	seqField := fieldWithPrefix(fields, seqPrefix)
	if seqField == nil {
		return types.Sample{}, &MalformedLineError{Line: string(line), Reason: "no icmp_seq= token"}
	}
	seq, err := strconv.Atoi(string(seqField[len(seqPrefix):]))
	if err != nil {
		return types.Sample{}, &MalformedLineError{Line: string(line), Reason: "unparseable sequence number"}
	}
	for _, field := range fields {
		if bytes.Equal(field, unreachableToken) {
			return types.Sample{Seq: seq, Unreachable: true}, nil
		}
	}
	timeField := fieldWithPrefix(fields, timePrefix)
	if timeField == nil {
		return types.Sample{}, &MalformedLineError{Line: string(line), Reason: "no time= token"}
	}
	value := timeField[len(timePrefix):]
	for len(value) > 0 && !isDigit(value[len(value)-1]) {
		value = value[:len(value)-1]
	}
	rtt, err := strconv.ParseFloat(string(value), 64)
	if err != nil {
		return types.Sample{}, &MalformedLineError{Line: string(line), Reason: "unparseable round-trip time"}
	}
	return types.Sample{Seq: seq, RTT: rtt}, nil
}

// fieldWithPrefix returns the first field starting with the given byte
// prefix, or nil if there is none.
func fieldWithPrefix(fields [][]byte, prefix []byte) []byte {
	for _, field := range fields {
		if bytes.HasPrefix(field, prefix) {
			return field
		}
	}
	return nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
