package composite

import "errors"

// ErrNilFrame is returned when Apply receives a nil frame image.
var ErrNilFrame = errors.New("frame image cannot be nil")
