package video

// Source yields decoded frames in presentation order.
type Source interface {
	// Info returns the stream description. It is valid immediately after
	// the source is opened.
	Info() Info
	// Next returns the next frame. It returns io.EOF after the last
	// frame and *CorruptFrameError for frames the decoder could not
	// fully produce.
	Next() (Frame, error)
	// Close releases the decoder.
	Close() error
}

// Sink accepts frames in output order.
type Sink interface {
	// Write encodes one frame. Frames must arrive in ascending index
	// order with the dimensions the sink was created with.
	Write(frame Frame) error
	// Close flushes and finalizes the output. The output is not
	// playable until Close returns.
	Close() error
}
