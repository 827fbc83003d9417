package ics

import (
	"time"

	"epdtoday/internal/localtime"
)

// OverlapsLocalDay reports whether [startUTC, endUTC] intersects the local
// calendar day (00:00:00–23:59:59) containing nowUTC, where "local" is
// defined entirely by the measured offset. The shifted epoch is decomposed
// via UTC so no timezone rule is consulted; the day bounds are rebuilt the
// same way and unshifted back to true UTC instants.
//
// Zero-duration and end-less events are treated as instants: the effective
// end is the later of start and end.
func OverlapsLocalDay(startUTC, endUTC, nowUTC, offset int64) bool {
	wall := time.Unix(nowUTC+offset, 0).UTC()
	y, mo, d := wall.Date()

	dayStart := localtime.AsUTC(y, mo, d, 0, 0, 0) - offset
	dayEnd := localtime.AsUTC(y, mo, d, 23, 59, 59) - offset

	end := endUTC
	if startUTC > end {
		end = startUTC
	}
	return end >= dayStart && startUTC <= dayEnd
}
