package composite

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"github.com/opd-ai/vidblur/effect"
	"github.com/opd-ai/vidblur/region"
)

// Compositor applies region transforms to frames. It holds no per-frame
// state and is safe for concurrent use from multiple goroutines.
type Compositor struct{}

// New creates a frame compositor.
func New() *Compositor {
	return &Compositor{}
}

// Apply returns a copy of frame with every region rendered onto it in
// slice order. Regions are clipped to the frame first; a region that
// falls entirely outside contributes nothing. The returned image is a
// fresh buffer with origin (0,0) and the same dimensions as the input.
func (c *Compositor) Apply(frame *image.NRGBA, active []region.Region) (*image.NRGBA, error) {
	if frame == nil {
		return nil, ErrNilFrame
	}

	out := imaging.Clone(frame)
	frameBounds := out.Bounds()

	for i, r := range active {
		rect := r.Bounds().Intersect(frameBounds)
		if rect.Empty() {
			logrus.WithFields(logrus.Fields{
				"function": "Apply",
				"region":   i,
				"bounds":   r.Bounds().String(),
			}).Debug("region outside frame, skipped")
			continue
		}

		tr, err := effect.ForType(r.BlurType)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}

		block := out.SubImage(rect).(*image.NRGBA)
		rendered, err := tr.Apply(block, r.Intensity)
		if err != nil {
			return nil, fmt.Errorf("region %d (%s): %w", i, tr.GetName(), err)
		}

		xdraw.Draw(out, rect, rendered, image.Point{}, xdraw.Src)
	}

	return out, nil
}
