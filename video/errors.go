package video

import (
	"errors"
	"fmt"
	"image"
)

// ErrUnreadableSource indicates the input video could not be opened or
// probed (missing file, no decoder, no video stream metadata).
var ErrUnreadableSource = errors.New("video source unreadable")

// ErrUnwritableDestination indicates the output video could not be
// created or written.
var ErrUnwritableDestination = errors.New("video destination unwritable")

// ErrNoVideoStream indicates the container holds no video stream.
var ErrNoVideoStream = errors.New("no video stream found")

// ErrDimensionMismatch indicates a frame's dimensions differ from the
// dimensions the sink was created with.
var ErrDimensionMismatch = errors.New("frame dimensions do not match stream")

// ErrNilImage indicates a frame with no pixel data was handed to a sink.
var ErrNilImage = errors.New("frame image cannot be nil")

// CorruptFrameError reports a frame the decoder could not fully produce.
// Frame holds whatever pixels were recovered and may be nil.
type CorruptFrameError struct {
	Index int
	Frame *image.NRGBA
	Err   error
}

// Error returns a description including the frame index.
func (e *CorruptFrameError) Error() string {
	return fmt.Sprintf("corrupt frame %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *CorruptFrameError) Unwrap() error {
	return e.Err
}
