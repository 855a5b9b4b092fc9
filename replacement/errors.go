package replacement

import "errors"

var (
	// ErrEmptyInput is returned when the reference string has no element.
	ErrEmptyInput = errors.New("reference string is empty")

	// ErrInvalidCapacity is returned when the frame count is below one or
	// above the length of the reference string.
	ErrInvalidCapacity = errors.New("invalid frame count")

	// ErrNotReset is returned when Run is called on an engine that has
	// already run and has not been reset.
	ErrNotReset = errors.New("engine must be reset before running again")
)
