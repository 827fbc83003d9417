package ics

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/assert/v2"

	"epdtoday/internal/localtime"
	"epdtoday/internal/model"
)

func TestFmtClock(t *testing.T) {
	at := localtime.AsUTC(2023, time.November, 5, 14, 30, 0)

	assert.Equal(t, "14:30", fmtClock(at, 0))
	assert.Equal(t, "16:30", fmtClock(at, 7200))
	assert.Equal(t, "09:30", fmtClock(at, -18000))
	assert.Equal(t, "--:--", fmtClock(0, 7200))
	assert.Equal(t, "--:--", fmtClock(-1, 0))

	// Shifting across midnight wraps the wall clock, not the day math.
	late := localtime.AsUTC(2023, time.November, 5, 23, 30, 0)
	assert.Equal(t, "01:30", fmtClock(late, 7200))
}

func TestBuildRow(t *testing.T) {
	start := localtime.AsUTC(2023, time.November, 5, 14, 30, 0)

	t.Run("no_end_formats_start_twice", func(t *testing.T) {
		row := BuildRow(Event{Start: start, Summary: "Standup"}, 7200)
		assert.Equal(t, "16:30-16:30", row.TimeRange)
		assert.Equal(t, "Standup", row.Title)
	})

	t.Run("with_end_and_location", func(t *testing.T) {
		ev := Event{
			Start:    start,
			End:      start + 3600,
			Summary:  `Budget review\, Q4`,
			Location: `Room 12\; annex`,
		}
		row := BuildRow(ev, 7200)
		assert.Equal(t, "16:30-17:30", row.TimeRange)
		assert.Equal(t, "Budget review, Q4 (Room 12; annex)", row.Title)
	})

	t.Run("end_before_start_treated_as_instant", func(t *testing.T) {
		row := BuildRow(Event{Start: start, End: start - 600, Summary: "X"}, 0)
		assert.Equal(t, "14:30-14:30", row.TimeRange)
	})

	t.Run("title_truncated", func(t *testing.T) {
		row := BuildRow(Event{Start: start, Summary: strings.Repeat("x", 80)}, 0)
		assert.Equal(t, model.MaxTitleLen, len(row.Title))
	})

	t.Run("truncation_counts_runes", func(t *testing.T) {
		row := BuildRow(Event{Start: start, Summary: strings.Repeat("일", 50)}, 0)
		assert.Equal(t, model.MaxTitleLen, utf8.RuneCountInString(row.Title))
		assert.True(t, utf8.ValidString(row.Title))
	})
}
