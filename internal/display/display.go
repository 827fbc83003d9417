// Package display holds the seam between the agenda core and whatever
// actually paints it. The physical e-paper driver lives outside this
// repository; it borrows the caller-owned row slice for the duration of
// one Show call and plugs in behind the same interface as the console
// sink shipped here.
package display

import (
	"context"
	"fmt"
	"io"

	"epdtoday/internal/model"
)

// Sink renders one refresh worth of agenda rows.
type Sink interface {
	// Show renders rows. It must not retain the slice after returning.
	Show(ctx context.Context, rows []model.Row) error
}

// consoleSink writes rows as plain text lines. It is used for development,
// for the -once mode, and as the reference Sink implementation.
type consoleSink struct {
	w io.Writer
}

// NewConsoleSink constructs a Sink that writes to w.
func NewConsoleSink(w io.Writer) Sink {
	return &consoleSink{w: w}
}

func (s *consoleSink) Show(_ context.Context, rows []model.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(s.w, "(no events today)")
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(s.w, "%s  %s\n", r.TimeRange, r.Title); err != nil {
			return err
		}
	}
	return nil
}
