package video

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Frame is one decoded video frame. Image is always an opaque NRGBA
// raster with origin (0,0); Index is the zero-based position in the
// stream.
type Frame struct {
	Image *image.NRGBA
	Index int
}

// Info describes a video stream.
type Info struct {
	Width  int
	Height int
	// FrameCount is the total number of frames, or 0 when the container
	// does not declare it.
	FrameCount int
	FPS        float64
}

// Validate checks that the info describes an encodable stream.
func (i Info) Validate() error {
	if i.Width <= 0 || i.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrUnreadableSource, i.Width, i.Height)
	}
	if i.FPS <= 0 {
		return fmt.Errorf("%w: frame rate %g", ErrUnreadableSource, i.FPS)
	}
	return nil
}

// String formats the info for logs, e.g. "1920x1080 @ 29.97fps (450 frames)".
func (i Info) String() string {
	if i.FrameCount == 0 {
		return fmt.Sprintf("%dx%d @ %gfps", i.Width, i.Height, i.FPS)
	}
	return fmt.Sprintf("%dx%d @ %gfps (%d frames)", i.Width, i.Height, i.FPS, i.FrameCount)
}

// frameBytes is the raw RGBA size of one frame.
func (i Info) frameBytes() int {
	return i.Width * i.Height * 4
}

// BlackFrame builds an opaque black frame of the stream's dimensions,
// used as a substitute when a corrupt frame carries no recoverable
// pixels.
func BlackFrame(info Info, index int) Frame {
	img := image.NewNRGBA(image.Rect(0, 0, info.Width, info.Height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{A: 255}), image.Point{}, xdraw.Src)
	return Frame{Image: img, Index: index}
}
