package ics

import (
	"io"
	"strings"
	"time"

	"epdtoday/internal/localtime"
)

// Event is one complete, non-cancelled VEVENT as produced by ScanEvents.
// Start and End are UTC epoch seconds; End <= Start means the source gave
// no usable end and the event is treated as an instant. Summary and
// Location are still ICS-escaped; Unescape is applied by the row mapper.
type Event struct {
	Start    int64
	End      int64
	Summary  string
	Location string
}

// ScanEvents streams logical lines from r and calls yield for every event
// that has a valid DTSTART, a non-empty SUMMARY and no CANCELLED status.
// Cancelled, malformed and incomplete events are silently dropped; that
// includes the dangling partial VEVENT a tail fetch may start inside, and
// events whose only defect is a bad date field. yield returning false
// stops the scan immediately.
//
// loc is the wall clock used for naive local and all-day stamps; nil means
// time.Local.
func ScanEvents(r io.Reader, loc *time.Location, yield func(Event) bool) {
	if loc == nil {
		loc = time.Local
	}

	var (
		inEvent   bool
		inAlarm   bool
		cancelled bool
		cur       Event
	)

	lr := NewLineReader(r)
	for {
		ln, ok := lr.Next()
		if !ok {
			return
		}

		// Alarms nest inside events; nothing in them is ours.
		if strings.HasPrefix(ln, "BEGIN:VALARM") {
			inAlarm = true
			continue
		}
		if strings.HasPrefix(ln, "END:VALARM") {
			inAlarm = false
			continue
		}
		if inAlarm {
			continue
		}

		if ln == "BEGIN:VEVENT" {
			inEvent = true
			cancelled = false
			cur = Event{}
			continue
		}
		if ln == "END:VEVENT" {
			if inEvent && !cancelled && cur.Start > 0 && cur.Summary != "" {
				if !yield(cur) {
					return
				}
			}
			inEvent = false
			continue
		}
		if !inEvent {
			continue
		}

		switch {
		case strings.HasPrefix(ln, "DTSTART"):
			if t, ok := parseDateTime(ln, loc); ok {
				cur.Start = t
			}
		case strings.HasPrefix(ln, "DTEND"):
			if t, ok := parseDateTime(ln, loc); ok {
				cur.End = t
			}
		case strings.HasPrefix(ln, "STATUS:"):
			if strings.Contains(ln, "CANCELLED") {
				cancelled = true
			}
		case strings.HasPrefix(ln, "SUMMARY:"):
			cur.Summary = ln[len("SUMMARY:"):]
		case strings.HasPrefix(ln, "LOCATION:"):
			cur.Location = ln[len("LOCATION:"):]
		}
	}
}

// parseDateTime parses the three supported DTSTART/DTEND forms:
//
//	DTSTART:20250101T090000Z                     UTC instant
//	DTSTART;TZID=Europe/Berlin:20250101T090000   naive local (params ignored)
//	DTSTART;VALUE=DATE:20250101                  all-day, local midnight
//
// Time digits are zero-padded or truncated to exactly six. A failed parse
// leaves the field unset; the completeness check on END:VEVENT discards
// the event if that field was DTSTART.
func parseDateTime(line string, loc *time.Location) (int64, bool) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return 0, false
	}
	v := strings.TrimSpace(line[colon+1:])

	zulu := false
	if n := len(v); n > 0 && (v[n-1] == 'Z' || v[n-1] == 'z') {
		zulu = true
		v = v[:n-1]
	}

	tpos := strings.IndexByte(v, 'T')

	// All-day: a bare date becomes midnight on the local wall clock.
	if tpos < 0 {
		y, mo, d, ok := parseDate(v)
		if !ok {
			return 0, false
		}
		t := localtime.Epoch(loc, y, mo, d, 0, 0, 0)
		return t, t > 0
	}

	if tpos < 8 {
		return 0, false
	}
	y, mo, d, ok := parseDate(v[:8])
	if !ok {
		return 0, false
	}

	// Keep only digits from the time part, normalized to HHMMSS.
	var td [6]byte
	n := 0
	for i := tpos + 1; i < len(v) && n < len(td); i++ {
		if v[i] >= '0' && v[i] <= '9' {
			td[n] = v[i]
			n++
		}
	}
	for ; n < len(td); n++ {
		td[n] = '0'
	}

	hh := int(td[0]-'0')*10 + int(td[1]-'0')
	mm := int(td[2]-'0')*10 + int(td[3]-'0')
	ss := int(td[4]-'0')*10 + int(td[5]-'0')
	if hh > 23 || mm > 59 || ss > 60 { // 60 tolerates a leap second
		return 0, false
	}

	var t int64
	if zulu {
		t = localtime.AsUTC(y, mo, d, hh, mm, ss)
	} else {
		t = localtime.Epoch(loc, y, mo, d, hh, mm, ss)
	}
	return t, t > 0
}

// parseDate reads a strict YYYYMMDD prefix with range checks.
func parseDate(v string) (year int, month time.Month, day int, ok bool) {
	if len(v) < 8 {
		return 0, 0, 0, false
	}
	for i := 0; i < 8; i++ {
		if v[i] < '0' || v[i] > '9' {
			return 0, 0, 0, false
		}
	}

	y := int(v[0]-'0')*1000 + int(v[1]-'0')*100 + int(v[2]-'0')*10 + int(v[3]-'0')
	mo := int(v[4]-'0')*10 + int(v[5]-'0')
	d := int(v[6]-'0')*10 + int(v[7]-'0')
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return 0, 0, 0, false
	}
	return y, time.Month(mo), d, true
}
