package effect

import (
	"fmt"
	"image"

	"github.com/opd-ai/vidblur/region"
)

// Transform applies one obfuscation style to a pixel block.
type Transform interface {
	// Apply processes a pixel block and returns a new block of identical
	// dimensions. The input is never modified.
	Apply(block *image.NRGBA, intensity int) (*image.NRGBA, error)
	// GetName returns the transform name for identification
	GetName() string
}

// transforms maps every supported blur type to its transform. The map is
// the single dispatch point: a type missing here is a type the engine
// cannot render.
var transforms = map[region.BlurType]Transform{
	region.BlurGaussian: NewGaussian(),
	region.BlurPixelate: NewPixelate(),
	region.BlurBlackBox: NewBlackBox(),
	region.BlurWhiteBox: NewWhiteBox(),
}

// ForType returns the transform registered for the given blur type.
// Unknown types are an error, not a fallback: region validation is the
// only gate, and a value that bypassed it must not silently render as
// some default style.
func ForType(t region.BlurType) (Transform, error) {
	tr, ok := transforms[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	return tr, nil
}

// normalize converts an integer intensity in [region.MinIntensity,
// region.MaxIntensity] to the [0.1,1.0] scale the transforms work in.
// Out-of-range values are an error; the engine never clamps.
func normalize(intensity int) (float64, error) {
	if intensity < region.MinIntensity || intensity > region.MaxIntensity {
		return 0, fmt.Errorf("%w: %d not in [%d,%d]",
			region.ErrInvalidIntensity, intensity, region.MinIntensity, region.MaxIntensity)
	}
	return float64(intensity) / 100.0, nil
}
