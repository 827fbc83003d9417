package ics

import (
	"bufio"
	"io"
)

const (
	// maxPhysLine bounds one physical line; anything longer is truncated
	// and the remainder up to the newline discarded. Matches the fixed
	// line buffer the parse loop was sized for.
	maxPhysLine = 1024

	// maxLogicalLine bounds the folded logical-line accumulator so a
	// hostile or broken feed cannot grow it without limit.
	maxLogicalLine = 8 * 1024
)

// LineReader turns a byte stream into RFC 5545 logical lines. Physical
// lines end at '\n' with an optional trailing '\r' stripped; a physical
// line beginning with a space or tab continues the previous logical line
// and is appended with its single leading whitespace byte removed.
//
// The sequence is finite and not restartable. A continuation arriving with
// no previous logical line simply starts one: range-limited fetches
// routinely begin in the middle of a folded line.
type LineReader struct {
	r       *bufio.Reader
	phys    []byte
	logical []byte
	pending bool
}

// NewLineReader wraps r. An empty stream yields zero logical lines.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r:    bufio.NewReader(r),
		phys: make([]byte, 0, maxPhysLine),
	}
}

// Next returns the next logical line. ok is false once the stream is
// exhausted; end of stream flushes any pending logical line first.
func (lr *LineReader) Next() (line string, ok bool) {
	for {
		phys, more := lr.readPhysical()
		if !more {
			if lr.pending {
				lr.pending = false
				return string(lr.logical), true
			}
			return "", false
		}

		if len(phys) > 0 && (phys[0] == ' ' || phys[0] == '\t') {
			cont := phys[1:]
			if room := maxLogicalLine - len(lr.logical); room < len(cont) {
				if room < 0 {
					room = 0
				}
				cont = cont[:room]
			}
			lr.logical = append(lr.logical, cont...)
			lr.pending = true
			continue
		}

		if lr.pending {
			out := string(lr.logical)
			lr.logical = append(lr.logical[:0], phys...)
			return out, true
		}
		lr.logical = append(lr.logical[:0], phys...)
		lr.pending = true
	}
}

// readPhysical reads one physical line without its terminator. Bytes past
// maxPhysLine are consumed and dropped. Returns false only when the stream
// produced no bytes at all.
func (lr *LineReader) readPhysical() ([]byte, bool) {
	lr.phys = lr.phys[:0]
	seen := false

	for {
		b, err := lr.r.ReadByte()
		if err != nil {
			if !seen {
				return nil, false
			}
			break
		}
		seen = true
		if b == '\n' {
			break
		}
		if len(lr.phys) < maxPhysLine {
			lr.phys = append(lr.phys, b)
		}
	}

	if n := len(lr.phys); n > 0 && lr.phys[n-1] == '\r' {
		lr.phys = lr.phys[:n-1]
	}
	return lr.phys, true
}
