package region

import "errors"

// Sentinel errors for region validation and persistence.
// These errors enable reliable error classification using errors.Is().

// Validation errors.
var (
	// ErrInvalidBounds indicates non-positive width/height or a negative origin.
	ErrInvalidBounds = errors.New("invalid region bounds")

	// ErrInvalidBlurType indicates an unrecognized blur type string.
	ErrInvalidBlurType = errors.New("invalid blur type")

	// ErrInvalidIntensity indicates an intensity outside [MinIntensity, MaxIntensity].
	ErrInvalidIntensity = errors.New("intensity out of range")

	// ErrInvalidFrameRange indicates a negative start frame, an end frame
	// below -1, or an end frame before the start frame.
	ErrInvalidFrameRange = errors.New("invalid frame range")
)

// Persistence errors.
var (
	// ErrMalformedConfig indicates a region descriptor that is syntactically
	// broken, missing a required field, or out of declared range. Load never
	// coerces such values; it fails on the first bad descriptor.
	ErrMalformedConfig = errors.New("malformed region config")

	// ErrIndexOutOfRange indicates a Remove index outside the set.
	ErrIndexOutOfRange = errors.New("region index out of range")
)
