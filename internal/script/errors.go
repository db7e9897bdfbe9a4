package script

import "errors"

var (
	// ErrHostClosed is returned by operations on a closed host.
	ErrHostClosed = errors.New("script host is closed")

	// ErrUnknownTransform is returned when no transform has the
	// requested name.
	ErrUnknownTransform = errors.New("unknown transform")

	// ErrInvalidBounds is returned when a transform yields a selection
	// outside the text it returned.
	ErrInvalidBounds = errors.New("transform returned invalid bounds")
)
