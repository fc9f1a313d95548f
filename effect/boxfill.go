package effect

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Fill covers a block with a single opaque color, destroying its content
// entirely. Intensity does not apply to fills and is ignored.
type Fill struct {
	name  string
	color color.NRGBA
}

// NewBlackBox creates a solid black fill transform.
func NewBlackBox() *Fill {
	return &Fill{name: "black_box", color: color.NRGBA{A: 255}}
}

// NewWhiteBox creates a solid white fill transform.
func NewWhiteBox() *Fill {
	return &Fill{name: "white_box", color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}}
}

// Apply returns a block of the same dimensions filled with the configured
// color. The intensity argument is accepted for interface symmetry and
// has no effect.
func (f *Fill) Apply(block *image.NRGBA, _ int) (*image.NRGBA, error) {
	if block == nil {
		return nil, ErrNilBlock
	}

	bounds := block.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(out, out.Bounds(), image.NewUniform(f.color), image.Point{}, xdraw.Src)
	return out, nil
}

// GetName returns the transform name.
func (f *Fill) GetName() string {
	return f.name
}
