package ics

import "strings"

// Unescape reverses RFC 5545 text escaping for single-line display:
// "\n" and "\N" become one space (multi-line summaries collapse onto one
// line), and "\\", "\," and "\;" drop the backslash. Any other backslash
// sequence, including a lone trailing backslash, passes through unchanged.
// Input without backslashes is returned as-is.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch n := s[i+1]; n {
			case 'n', 'N':
				b.WriteByte(' ')
				i++
				continue
			case '\\', ',', ';':
				b.WriteByte(n)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
