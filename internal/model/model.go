package model

// MaxTitleLen is the maximum number of visible characters in a Row title.
// The e-paper agenda list renders one line per row; anything longer is
// truncated by the output mapper before the row is handed over.
const MaxTitleLen = 39

// DefaultRows is how many agenda rows the display normally shows. Callers
// may pass a smaller destination slice; the effective budget is the smaller
// of the two.
const DefaultRows = 6

// Row is a single display-ready agenda line. It is the only type that
// crosses from the calendar core into the display subsystem.
//
// A Row is either fully populated or never emitted; the core appends rows
// in document parse order and never rewrites one it already filled.
type Row struct {
	// Title is the unescaped event summary, with the location appended in
	// parentheses when present, truncated to MaxTitleLen characters.
	Title string

	// TimeRange is the fixed-format "HH:MM-HH:MM" local time range.
	TimeRange string
}
