package scoring

import "errors"

var (
	// ErrMalformedRecord is returned when a reference-sheet row fails
	// shape or type validation.
	ErrMalformedRecord = errors.New("malformed reference record")

	// ErrNoRegionMatch is returned when the region table cannot
	// produce a multiplier.
	ErrNoRegionMatch = errors.New("no region rule matches")
)
