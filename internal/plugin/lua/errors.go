package lua

import "errors"

var (
	// ErrStateClosed is returned when using a closed State.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotFunction is returned when calling a field that is not a function.
	ErrNotFunction = errors.New("field is not a function")
)
