package bins

import "errors"

var (
	// ErrInvalidGeometry is returned for non-positive bin counts or empty
	// coordinate ranges.
	ErrInvalidGeometry = errors.New("bins: invalid geometry")

	// ErrIndexOutOfRange is returned when a bin number does not address a bin
	// of the grid.
	ErrIndexOutOfRange = errors.New("bins: bin index out of range")

	ErrNoSelection = errors.New("bins: no bins selected")
)
