package ics

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func readAll(t *testing.T, src string) []string {
	t.Helper()

	lr := NewLineReader(strings.NewReader(src))
	var out []string
	for {
		ln, ok := lr.Next()
		if !ok {
			return out
		}
		out = append(out, ln)
	}
}

func TestLineReaderFolding(t *testing.T) {
	src := "SUMMARY:Hello\r\n World\r\nLOCATION:Room 1\r\n"
	assert.Equal(t, []string{"SUMMARY:HelloWorld", "LOCATION:Room 1"}, readAll(t, src))
}

func TestLineReaderTabContinuation(t *testing.T) {
	src := "DESCRIPTION:part one\n\tpart two\n"
	assert.Equal(t, []string{"DESCRIPTION:part onepart two"}, readAll(t, src))
}

func TestLineReaderFlushAtEOF(t *testing.T) {
	// No trailing newline: the pending logical line is still flushed.
	src := "SUMMARY:no newline"
	assert.Equal(t, []string{"SUMMARY:no newline"}, readAll(t, src))

	// Same with a pending continuation.
	src = "SUMMARY:a\n b"
	assert.Equal(t, []string{"SUMMARY:ab"}, readAll(t, src))
}

func TestLineReaderEmptyStream(t *testing.T) {
	assert.Equal(t, 0, len(readAll(t, "")))
}

func TestLineReaderLeadingContinuation(t *testing.T) {
	// A tail fetch can start inside a folded line; the orphan continuation
	// starts a fresh logical line.
	src := " dangling tail\nSUMMARY:next\n"
	assert.Equal(t, []string{"dangling tail", "SUMMARY:next"}, readAll(t, src))
}

func TestLineReaderOverlongPhysicalLine(t *testing.T) {
	long := strings.Repeat("A", 4000)
	src := "X:" + long + "\nY:short\n"

	lines := readAll(t, src)
	assert.Equal(t, 2, len(lines))
	// Truncated to the physical-line cap, not an error.
	assert.Equal(t, maxPhysLine, len(lines[0]))
	assert.Equal(t, "Y:short", lines[1])
}

func TestLineReaderRefoldIdentity(t *testing.T) {
	// Folding a document's logical lines back up must reproduce the
	// original logical lines byte for byte.
	logical := []string{
		"BEGIN:VEVENT",
		"SUMMARY:" + strings.Repeat("A long summary that keeps on going. ", 8),
		"LOCATION:Somewhere with a fairly long room name indeed",
		"END:VEVENT",
	}

	var folded strings.Builder
	for _, ln := range logical {
		for len(ln) > 70 {
			folded.WriteString(ln[:70])
			folded.WriteString("\r\n ")
			ln = ln[70:]
		}
		folded.WriteString(ln)
		folded.WriteString("\r\n")
	}

	assert.Equal(t, logical, readAll(t, folded.String()))
}
