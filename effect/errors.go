package effect

import "errors"

var (
	// ErrUnknownType is returned when a blur type has no registered
	// transform. Values that passed region validation never trigger it.
	ErrUnknownType = errors.New("unknown blur type")

	// ErrNilBlock is returned when a transform receives a nil pixel block.
	ErrNilBlock = errors.New("pixel block cannot be nil")
)
