package video

import (
	"fmt"
	"image"
	"io"
)

// BufferSource serves frames from memory. It implements Source for
// programs that synthesize frames and for tests that need deterministic
// streams, including streams with injected decode failures.
type BufferSource struct {
	info   Info
	frames []*image.NRGBA
	broken map[int]error
	pos    int
}

// NewBufferSource creates a source over the given frames. The slice is
// used as-is; the caller must not mutate the images afterwards.
func NewBufferSource(info Info, frames []*image.NRGBA) *BufferSource {
	return &BufferSource{
		info:   info,
		frames: frames,
		broken: make(map[int]error),
	}
}

// BreakFrame makes Next return a *CorruptFrameError for the frame at the
// given index. The error carries the stored raster, modelling a decoder
// that produced bytes but flagged them as damaged. The stream continues
// normally afterwards.
func (s *BufferSource) BreakFrame(index int, err error) {
	s.broken[index] = err
}

// Info returns the stream description.
func (s *BufferSource) Info() Info {
	return s.info
}

// Next returns the next frame, io.EOF at the end of the slice, or the
// injected corruption for broken indices.
func (s *BufferSource) Next() (Frame, error) {
	if s.pos >= len(s.frames) {
		return Frame{}, io.EOF
	}

	index := s.pos
	s.pos++

	if err, ok := s.broken[index]; ok {
		return Frame{}, &CorruptFrameError{Index: index, Frame: s.frames[index], Err: err}
	}
	return Frame{Image: s.frames[index], Index: index}, nil
}

// Close is a no-op.
func (s *BufferSource) Close() error {
	return nil
}

// BufferSink collects written frames in memory.
type BufferSink struct {
	frames []Frame
	failOn map[int]error
	closed bool
}

// NewBufferSink creates an empty in-memory sink.
func NewBufferSink() *BufferSink {
	return &BufferSink{
		failOn: make(map[int]error),
	}
}

// FailOn makes Write fail for the frame at the given index, for
// exercising encoder-failure paths.
func (k *BufferSink) FailOn(index int, err error) {
	k.failOn[index] = err
}

// Write stores the frame.
func (k *BufferSink) Write(frame Frame) error {
	if k.closed {
		return fmt.Errorf("%w: sink closed", ErrUnwritableDestination)
	}
	if frame.Image == nil {
		return ErrNilImage
	}
	if err, ok := k.failOn[frame.Index]; ok {
		return fmt.Errorf("%w: %v", ErrUnwritableDestination, err)
	}
	k.frames = append(k.frames, frame)
	return nil
}

// Close marks the sink closed; further writes fail.
func (k *BufferSink) Close() error {
	k.closed = true
	return nil
}

// Frames returns the frames written so far, in write order.
func (k *BufferSink) Frames() []Frame {
	return k.frames
}
