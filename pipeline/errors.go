package pipeline

import "errors"

var (
	// ErrNilSource is returned when Run receives a nil video source.
	ErrNilSource = errors.New("video source cannot be nil")

	// ErrNilSink is returned when Run receives a nil video sink.
	ErrNilSink = errors.New("video sink cannot be nil")
)
