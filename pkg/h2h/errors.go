package h2h

import "errors"

// Query failures are local to a single call. They never corrupt the table
// and never prevent a subsequent query from succeeding, so callers are
// expected to match with errors.Is and carry on.
var (
	// ErrNoAppearances is returned when a win rate is requested for a
	// competitor with no recorded matches on either side
	ErrNoAppearances = errors.New("competitor has no historical appearances")

	// ErrEmptyAggregate is returned when an average is requested over an
	// empty set of records
	ErrEmptyAggregate = errors.New("no records available for aggregate")

	// ErrInvalidParameter is returned when a probability or target score
	// argument is outside its domain
	ErrInvalidParameter = errors.New("parameter out of domain")
)
