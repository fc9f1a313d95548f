package region

import (
	"fmt"
	"image"
)

// BlurType identifies the pixel transform applied inside a region. The set
// of types is closed; the effect package keeps a registry keyed by these
// values and rejects anything else.
type BlurType string

const (
	// BlurGaussian softens the region with an isotropic gaussian kernel
	// whose radius scales with intensity.
	BlurGaussian BlurType = "gaussian"
	// BlurPixelate replaces the region with a mosaic of mean-colored cells
	// whose size scales with intensity.
	BlurPixelate BlurType = "pixelate"
	// BlurBlackBox fills the region with solid black. Intensity is ignored.
	BlurBlackBox BlurType = "black_box"
	// BlurWhiteBox fills the region with solid white. Intensity is ignored.
	BlurWhiteBox BlurType = "white_box"
)

// Valid reports whether t is one of the four recognized blur types.
func (t BlurType) Valid() bool {
	switch t {
	case BlurGaussian, BlurPixelate, BlurBlackBox, BlurWhiteBox:
		return true
	}
	return false
}

// ParseBlurType converts a descriptor string into a BlurType.
func ParseBlurType(s string) (BlurType, error) {
	t := BlurType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBlurType, s)
	}
	return t, nil
}

// Intensity bounds. Intensity is blur-type-specific: gaussian scales the
// kernel radius, pixelate scales the cell size, and the box types ignore it.
const (
	MinIntensity = 10
	MaxIntensity = 100
)

// OpenEnd as an EndFrame value means the region stays active until the last
// frame of the video.
const OpenEnd = -1

// Region is an immutable descriptor for one obfuscation area: an axis-aligned
// pixel rectangle, the transform to apply inside it, and the inclusive frame
// range it covers. Regions are plain values; copy them freely.
//
// Bounds may extend past the frame edges. The compositor clips to the
// in-bounds intersection at apply time; creation never rejects oversized
// rectangles, only non-positive ones.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int

	BlurType  BlurType
	Intensity int

	// PIIType is a free-form label ("email", "face", ...) carried through
	// reports and config round-trips but never interpreted by the engine.
	PIIType string

	// StartFrame and EndFrame bound the region's activity, inclusive.
	// EndFrame == OpenEnd keeps the region active to the end of the video.
	StartFrame int
	EndFrame   int
}

// New constructs a validated region covering the whole video (StartFrame 0,
// EndFrame OpenEnd) with an empty PIIType. Adjust the temporal fields and
// label on the returned value as needed, then Add it to a Set; Add
// re-validates so later adjustments cannot smuggle in bad values.
func New(x, y, width, height int, blurType BlurType, intensity int) (Region, error) {
	r := Region{
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		BlurType:   blurType,
		Intensity:  intensity,
		StartFrame: 0,
		EndFrame:   OpenEnd,
	}
	if err := r.Validate(); err != nil {
		return Region{}, err
	}
	return r, nil
}

// Validate checks every invariant the engine relies on. The pipeline never
// clamps or coerces; this and Load are the only gates for bad values.
func (r Region) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", ErrInvalidBounds, r.Width, r.Height)
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("%w: origin must be non-negative, got (%d,%d)", ErrInvalidBounds, r.X, r.Y)
	}
	if !r.BlurType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBlurType, string(r.BlurType))
	}
	if r.Intensity < MinIntensity || r.Intensity > MaxIntensity {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidIntensity, r.Intensity, MinIntensity, MaxIntensity)
	}
	if r.StartFrame < 0 {
		return fmt.Errorf("%w: start frame %d is negative", ErrInvalidFrameRange, r.StartFrame)
	}
	if r.EndFrame < OpenEnd {
		return fmt.Errorf("%w: end frame %d below %d", ErrInvalidFrameRange, r.EndFrame, OpenEnd)
	}
	if r.EndFrame != OpenEnd && r.EndFrame < r.StartFrame {
		return fmt.Errorf("%w: end frame %d before start frame %d", ErrInvalidFrameRange, r.EndFrame, r.StartFrame)
	}
	return nil
}

// Bounds returns the region's rectangle in image coordinates.
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Covers reports whether the region is active on the given frame index.
func (r Region) Covers(frame int) bool {
	if frame < r.StartFrame {
		return false
	}
	return r.EndFrame == OpenEnd || frame <= r.EndFrame
}

// String renders a compact description used in logs and report summaries.
func (r Region) String() string {
	end := "end"
	if r.EndFrame != OpenEnd {
		end = fmt.Sprintf("%d", r.EndFrame)
	}
	return fmt.Sprintf("%s(%d%%) %dx%d@(%d,%d) frames %d-%s",
		r.BlurType, r.Intensity, r.Width, r.Height, r.X, r.Y, r.StartFrame, end)
}
