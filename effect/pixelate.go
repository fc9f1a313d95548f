package effect

import (
	"image"

	"github.com/disintegration/imaging"
)

// Pixelate replaces the block with a coarse mosaic. Higher intensity
// produces larger cells and therefore fewer of them.
type Pixelate struct{}

// NewPixelate creates a pixelation transform.
func NewPixelate() *Pixelate {
	return &Pixelate{}
}

// Apply downsamples the block so each output cell averages one
// cell×cell area, then scales back up with nearest-neighbor so the
// cells stay hard-edged. Cell side is 2 + ⌊18×norm⌋ pixels; blocks
// smaller than one cell collapse to a single flat color.
func (p *Pixelate) Apply(block *image.NRGBA, intensity int) (*image.NRGBA, error) {
	if block == nil {
		return nil, ErrNilBlock
	}
	norm, err := normalize(intensity)
	if err != nil {
		return nil, err
	}

	bounds := block.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	cell := 2 + int(18*norm)
	dw := w / cell
	if dw < 1 {
		dw = 1
	}
	dh := h / cell
	if dh < 1 {
		dh = 1
	}

	small := imaging.Resize(block, dw, dh, imaging.Box)
	return imaging.Resize(small, w, h, imaging.NearestNeighbor), nil
}

// GetName returns the transform name.
func (p *Pixelate) GetName() string {
	return "pixelate"
}
