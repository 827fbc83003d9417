package localtime

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestAsUTC(t *testing.T) {
	// Known epochs.
	assert.Equal(t, int64(0), AsUTC(1970, time.January, 1, 0, 0, 0))
	assert.Equal(t, int64(1704067200), AsUTC(2024, time.January, 1, 0, 0, 0))
	assert.Equal(t, int64(1704067200+14*3600+30*60), AsUTC(2024, time.January, 1, 14, 30, 0))
}

func TestEpoch(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*3600)

	// 02:00 at UTC+2 is midnight UTC.
	assert.Equal(t, int64(1704067200), Epoch(plus2, 2024, time.January, 1, 2, 0, 0))

	// nil location falls back to time.Local.
	want := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.Local).Unix()
	assert.Equal(t, want, Epoch(nil, 2024, time.January, 1, 12, 0, 0))
}

func TestOffsetSeconds(t *testing.T) {
	instant := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("utc", func(t *testing.T) {
		assert.Equal(t, int64(0), OffsetSeconds(instant))
	})

	t.Run("east", func(t *testing.T) {
		plus2 := time.FixedZone("UTC+2", 2*3600)
		assert.Equal(t, int64(7200), OffsetSeconds(instant.In(plus2)))
	})

	t.Run("west", func(t *testing.T) {
		minus5 := time.FixedZone("UTC-5", -5*3600)
		assert.Equal(t, int64(-18000), OffsetSeconds(instant.In(minus5)))
	})
}
