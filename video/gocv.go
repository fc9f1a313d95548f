//go:build with_cv
// +build with_cv

package video

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	xdraw "golang.org/x/image/draw"
)

// OpenCVSource decodes a video file through OpenCV instead of an ffmpeg
// child process. Available with the "with_cv" build tag.
type OpenCVSource struct {
	path   string
	info   Info
	cap    *gocv.VideoCapture
	bgr    gocv.Mat
	rgba   gocv.Mat
	index  int
	closed bool
}

// NewOpenCVSource opens path with OpenCV's VideoCapture.
func NewOpenCVSource(path string) (*OpenCVSource, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableSource, path, err)
	}

	info := Info{
		Width:  int(cap.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(cap.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    cap.Get(gocv.VideoCaptureFPS),
	}
	if n := int(cap.Get(gocv.VideoCaptureFrameCount)); n > 0 {
		info.FrameCount = n
	}
	if err := info.Validate(); err != nil {
		cap.Close()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewOpenCVSource",
		"path":     path,
		"info":     info.String(),
	}).Info("Opened video source")

	return &OpenCVSource{
		path: path,
		info: info,
		cap:  cap,
		bgr:  gocv.NewMat(),
		rgba: gocv.NewMat(),
	}, nil
}

// Info returns the stream description.
func (s *OpenCVSource) Info() Info {
	return s.info
}

// Next reads and converts one frame. A frame OpenCV returns but cannot
// decode arrives as *CorruptFrameError; end of stream is io.EOF.
func (s *OpenCVSource) Next() (Frame, error) {
	if s.closed {
		return Frame{}, io.EOF
	}

	if ok := s.cap.Read(&s.bgr); !ok {
		return Frame{}, io.EOF
	}

	index := s.index
	s.index++

	if s.bgr.Empty() {
		return Frame{}, &CorruptFrameError{Index: index, Err: fmt.Errorf("decoder produced empty frame")}
	}

	gocv.CvtColor(s.bgr, &s.rgba, gocv.ColorBGRToRGBA)
	img, err := s.rgba.ToImage()
	if err != nil {
		return Frame{}, &CorruptFrameError{Index: index, Err: err}
	}

	return Frame{Image: imaging.Clone(img), Index: index}, nil
}

// Close releases the capture and its scratch mats.
func (s *OpenCVSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.bgr.Close()
	s.rgba.Close()
	return s.cap.Close()
}

// OpenCVSink encodes frames through OpenCV's VideoWriter. Available with
// the "with_cv" build tag.
type OpenCVSink struct {
	path   string
	info   Info
	writer *gocv.VideoWriter
	frames int
	closed bool
}

// NewOpenCVSink creates an MPEG-4 writer at path with the given stream
// parameters.
func NewOpenCVSink(path string, info Info) (*OpenCVSink, error) {
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnwritableDestination, err)
	}

	writer, err := gocv.VideoWriterFile(path, "mp4v", info.FPS, info.Width, info.Height, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnwritableDestination, path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("%w: %s: writer failed to open", ErrUnwritableDestination, path)
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewOpenCVSink",
		"path":     path,
		"info":     info.String(),
	}).Info("Opened video destination")

	return &OpenCVSink{path: path, info: info, writer: writer}, nil
}

// Write converts the frame to BGR and hands it to the writer.
func (k *OpenCVSink) Write(frame Frame) error {
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

	rgbaImg := image.NewRGBA(image.Rect(0, 0, k.info.Width, k.info.Height))
	xdraw.Draw(rgbaImg, rgbaImg.Bounds(), frame.Image, bounds.Min, xdraw.Src)

	rgba, err := gocv.ImageToMatRGBA(rgbaImg)
	if err != nil {
		return fmt.Errorf("%w: frame %d: %v", ErrUnwritableDestination, frame.Index, err)
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)

	if err := k.writer.Write(bgr); err != nil {
		return fmt.Errorf("%w: frame %d: %v", ErrUnwritableDestination, frame.Index, err)
	}
	k.frames++
	return nil
}

// Close finalizes the container.
func (k *OpenCVSink) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true

	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("%w: finalizing %s: %v", ErrUnwritableDestination, k.path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Close",
		"path":     k.path,
		"frames":   k.frames,
	}).Info("Finalized video destination")

	return nil
}
