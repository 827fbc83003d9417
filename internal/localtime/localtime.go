// Package localtime provides timezone-agnostic epoch arithmetic.
//
// The calendar core never asks the timezone database a question while
// parsing: it measures the local UTC offset once per fetch attempt and
// threads it, together with an explicit *time.Location for wall-clock
// construction, through every function that needs it. This keeps day-window
// math portable to targets where per-unit timezone propagation is
// unreliable, and keeps the offset an explicit input instead of hidden
// process-global state.
package localtime

import "time"

// AsUTC interprets broken-down wall-clock fields as a UTC instant and
// returns its epoch seconds. It applies no timezone rule at all (a timegm
// equivalent). Out-of-range fields are normalized by time.Date; callers
// that need strict validation check ranges before calling.
func AsUTC(year int, month time.Month, day, hour, min, sec int) int64 {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC).Unix()
}

// Epoch constructs the same wall-clock fields in an explicit location and
// returns the epoch seconds of the resulting instant. With loc == time.Local
// this is the platform's local-time construction (a mktime equivalent).
func Epoch(loc *time.Location, year int, month time.Month, day, hour, min, sec int) int64 {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, month, day, hour, min, sec, 0, loc).Unix()
}

// OffsetSeconds measures the local UTC offset at the given instant:
// it decomposes now into wall-clock fields in now's own location,
// reinterprets those fields as UTC via AsUTC, and subtracts the true
// instant. Positive east of UTC, negative west.
//
// The result is a snapshot. Callers measure once per fetch attempt and use
// that single value for the whole pass; an event straddling a DST
// transition on the transition day will therefore be shifted by the wrong
// offset on one side of the jump. That is an accepted limitation, not
// something to patch with a timezone-database lookup.
func OffsetSeconds(now time.Time) int64 {
	asUTC := AsUTC(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second())
	return asUTC - now.Unix()
}
