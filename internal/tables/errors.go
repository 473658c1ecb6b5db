package tables

import "errors"

var (
	// ErrYearNotFound is returned when no table exists for an assessment year
	ErrYearNotFound = errors.New("assessment year not found")
	// ErrNotApplicable is returned for the mixed-age single-child cell
	ErrNotApplicable = errors.New("cost table not applicable")
	// ErrBracketNotFound is returned when an income matches no bracket
	ErrBracketNotFound = errors.New("no cost bracket for income")
	// ErrInvalidTable is returned when table data fails integrity checks
	ErrInvalidTable = errors.New("invalid cost table data")
)
