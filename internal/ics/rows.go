package ics

import (
	"fmt"
	"time"

	"epdtoday/internal/model"
)

// fmtClock formats a UTC epoch as local wall-clock "HH:MM" using the
// measured offset. Decomposition goes through UTC so the platform's
// timezone facility never participates. Non-positive stamps render as
// "--:--".
func fmtClock(epochUTC, offset int64) string {
	if epochUTC <= 0 {
		return "--:--"
	}
	wall := time.Unix(epochUTC+offset, 0).UTC()
	return fmt.Sprintf("%02d:%02d", wall.Hour(), wall.Minute())
}

// BuildRow maps one qualifying event onto a display row: the fixed
// "HH:MM-HH:MM" range using the effective end, and the unescaped summary
// with the location parenthesized after it, truncated to
// model.MaxTitleLen characters. Truncation counts runes so a clipped
// multi-byte title stays valid UTF-8.
func BuildRow(ev Event, offset int64) model.Row {
	end := ev.End
	if ev.Start > end {
		end = ev.Start
	}

	title := Unescape(ev.Summary)
	if loc := Unescape(ev.Location); loc != "" {
		title += " (" + loc + ")"
	}
	if rs := []rune(title); len(rs) > model.MaxTitleLen {
		title = string(rs[:model.MaxTitleLen])
	}

	return model.Row{
		Title:     title,
		TimeRange: fmtClock(ev.Start, offset) + "-" + fmtClock(end, offset),
	}
}
