package analysis

import "errors"

// Sentinel errors for the dataset-level and query-level failure modes.
// Dataset-level errors abort an entire run; ErrInvalidPredictionRange is
// per-query and must not prevent other queries from succeeding.
var (
	// ErrMissingColumn indicates the name or price column is absent from
	// the dataset headers.
	ErrMissingColumn = errors.New("missing required column")

	// ErrNoYearColumns indicates no header matched the year pattern
	// (e.g. "2021", "FY21").
	ErrNoYearColumns = errors.New("no year columns found")

	// ErrInvalidPredictionRange indicates a projection query where the
	// target year is not strictly after the base year.
	ErrInvalidPredictionRange = errors.New("target year must be after base year")

	// ErrItemNotFound indicates a query referenced an item name absent
	// from the analyzed dataset.
	ErrItemNotFound = errors.New("item not found")
)
