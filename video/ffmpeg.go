package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ffmpegPath returns the encoder/decoder binary to run. VIDBLUR_FFMPEG
// overrides the PATH lookup for hosts that keep ffmpeg elsewhere.
func ffmpegPath() string {
	if p := os.Getenv("VIDBLUR_FFMPEG"); p != "" {
		return p
	}
	return "ffmpeg"
}

// buildDecodeArgs assembles the ffmpeg invocation that streams the first
// video stream of path as raw RGBA frames on stdout.
func buildDecodeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-i", path,
		"-map", "0:v:0",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-",
	}
}

// buildEncodeArgs assembles the ffmpeg invocation that reads raw RGBA
// frames on stdin and encodes them to path as H.264.
func buildEncodeArgs(path string, info Info) []string {
	return []string{
		"-y",
		"-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"-framerate", strconv.FormatFloat(info.FPS, 'f', -1, 64),
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		path,
	}
}

// FileSource decodes a video file through an ffmpeg child process.
type FileSource struct {
	ctx    context.Context
	path   string
	info   Info
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	buf    []byte
	index  int
	closed bool
}

// OpenFile probes path and starts an ffmpeg decoder for it. The returned
// source must be closed to reap the child process. The decoder is bound
// to ctx so cancellation unblocks a stalled read; Next reports such a
// read as the context's error.
func OpenFile(ctx context.Context, path string) (*FileSource, error) {
	info, err := Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffmpegPath(), buildDecodeArgs(path)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %v", ErrUnreadableSource, err)
	}

	src := &FileSource{
		ctx:    ctx,
		path:   path,
		info:   info,
		cmd:    cmd,
		stdout: stdout,
		buf:    make([]byte, info.frameBytes()),
	}
	cmd.Stderr = &src.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting ffmpeg: %v", ErrUnreadableSource, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "OpenFile",
		"path":     path,
		"info":     info.String(),
	}).Info("Opened video source")

	return src, nil
}

// Info returns the probed stream description.
func (s *FileSource) Info() Info {
	return s.info
}

// Next reads one frame from the decoder. A partial frame at the end of
// the stream is reported as *CorruptFrameError carrying the bytes that
// did arrive; a clean end is io.EOF. When cancellation kills the decoder
// mid-stream the failed read is reported as the context's error, never
// as end-of-stream or corruption.
func (s *FileSource) Next() (Frame, error) {
	if s.closed {
		return Frame{}, io.EOF
	}

	if n, err := io.ReadFull(s.stdout, s.buf); err != nil {
		if cErr := s.ctx.Err(); cErr != nil {
			return Frame{}, cErr
		}
		if err == io.EOF {
			return Frame{}, io.EOF
		}
		index := s.index
		s.index++
		if err == io.ErrUnexpectedEOF {
			partial := image.NewNRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
			copy(partial.Pix, s.buf[:n])
			return Frame{}, &CorruptFrameError{Index: index, Frame: partial, Err: fmt.Errorf("truncated frame data")}
		}
		return Frame{}, fmt.Errorf("%w: reading frame %d: %v", ErrUnreadableSource, index, err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
	copy(img.Pix, s.buf)

	frame := Frame{Image: img, Index: s.index}
	s.index++
	return frame, nil
}

// Close stops the decoder. Abandoning a stream mid-way is normal during
// cancellation, so decoder exit status is logged rather than returned.
func (s *FileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.stdout.Close()
	if err := s.cmd.Wait(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Close",
			"path":     s.path,
			"error":    err,
			"stderr":   strings.TrimSpace(s.stderr.String()),
		}).Debug("Decoder exited with error")
	}
	return nil
}

// FileSink encodes frames to a video file through an ffmpeg child
// process.
type FileSink struct {
	path   string
	info   Info
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	frames int
	closed bool
}

// CreateFile starts an ffmpeg encoder writing to path. The output is not
// playable until Close returns without error. The encoder child is not
// bound to any context: a cancelled run stops feeding frames, and Close
// signals end-of-input so ffmpeg can still finalize the container.
func CreateFile(path string, info Info) (*FileSink, error) {
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnwritableDestination, err)
	}

	cmd := exec.Command(ffmpegPath(), buildEncodeArgs(path, info)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %v", ErrUnwritableDestination, err)
	}

	sink := &FileSink{
		path:  path,
		info:  info,
		cmd:   cmd,
		stdin: stdin,
	}
	cmd.Stderr = &sink.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting ffmpeg: %v", ErrUnwritableDestination, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "CreateFile",
		"path":     path,
		"info":     info.String(),
	}).Info("Opened video destination")

	return sink, nil
}

// Write streams one frame's pixels to the encoder.
func (k *FileSink) Write(frame Frame) error {
	if k.closed {
		return fmt.Errorf("%w: sink closed", ErrUnwritableDestination)
	}
	if frame.Image == nil {
		return ErrNilImage
	}

	bounds := frame.Image.Bounds()
	if bounds.Dx() != k.info.Width || bounds.Dy() != k.info.Height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, bounds.Dx(), bounds.Dy(), k.info.Width, k.info.Height)
	}

	rowBytes := k.info.Width * 4
	if bounds.Min.X == 0 && bounds.Min.Y == 0 && frame.Image.Stride == rowBytes {
		if _, err := k.stdin.Write(frame.Image.Pix[:k.info.frameBytes()]); err != nil {
			return k.writeError(frame.Index, err)
		}
		k.frames++
		return nil
	}

	// Sub-image or padded stride: stream row by row.
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		off := frame.Image.PixOffset(bounds.Min.X, y)
		if _, err := k.stdin.Write(frame.Image.Pix[off : off+rowBytes]); err != nil {
			return k.writeError(frame.Index, err)
		}
	}
	k.frames++
	return nil
}

func (k *FileSink) writeError(index int, err error) error {
	if msg := strings.TrimSpace(k.stderr.String()); msg != "" {
		return fmt.Errorf("%w: frame %d: %v (%s)", ErrUnwritableDestination, index, err, msg)
	}
	return fmt.Errorf("%w: frame %d: %v", ErrUnwritableDestination, index, err)
}

// Close flushes the encoder and waits for it to finalize the container.
func (k *FileSink) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true

	k.stdin.Close()
	if err := k.cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(k.stderr.String()); msg != "" {
			return fmt.Errorf("%w: finalizing %s: %v (%s)", ErrUnwritableDestination, k.path, err, msg)
		}
		return fmt.Errorf("%w: finalizing %s: %v", ErrUnwritableDestination, k.path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Close",
		"path":     k.path,
		"frames":   k.frames,
	}).Info("Finalized video destination")

	return nil
}
