package composite

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vidblur/region"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	gray  = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

// createTestFrame builds an opaque mid-gray frame.
func createTestFrame(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, gray)
		}
	}
	return img
}

func mustRegion(t *testing.T, x, y, w, h int, blurType region.BlurType) region.Region {
	t.Helper()
	r, err := region.New(x, y, w, h, blurType, 70)
	require.NoError(t, err)
	return r
}

func TestApplySingleRegion(t *testing.T) {
	c := New()
	frame := createTestFrame(64, 48)

	out, err := c.Apply(frame, []region.Region{
		mustRegion(t, 10, 10, 20, 10, region.BlurBlackBox),
	})
	require.NoError(t, err)
	require.Equal(t, frame.Bounds(), out.Bounds())

	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			inside := x >= 10 && x < 30 && y >= 10 && y < 20
			if inside {
				require.Equal(t, black, out.NRGBAAt(x, y), "pixel (%d,%d) should be filled", x, y)
			} else {
				require.Equal(t, gray, out.NRGBAAt(x, y), "pixel (%d,%d) should be untouched", x, y)
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	c := New()
	frame := createTestFrame(32, 32)
	before := make([]byte, len(frame.Pix))
	copy(before, frame.Pix)

	_, err := c.Apply(frame, []region.Region{
		mustRegion(t, 0, 0, 32, 32, region.BlurWhiteBox),
	})
	require.NoError(t, err)
	assert.Equal(t, before, frame.Pix)
}

func TestApplyEmptyRegionListReturnsCopy(t *testing.T) {
	c := New()
	frame := createTestFrame(16, 16)

	out, err := c.Apply(frame, nil)
	require.NoError(t, err)
	assert.Equal(t, frame.Pix, out.Pix)

	// The copy must be a distinct buffer.
	out.SetNRGBA(0, 0, white)
	assert.Equal(t, gray, frame.NRGBAAt(0, 0))
}

func TestApplyOverlapFollowsListOrder(t *testing.T) {
	c := New()
	frame := createTestFrame(64, 64)
	whiteBox := mustRegion(t, 8, 8, 24, 24, region.BlurWhiteBox)
	blackBox := mustRegion(t, 8, 8, 24, 24, region.BlurBlackBox)

	// Whichever region comes last wins on the overlap.
	out, err := c.Apply(frame, []region.Region{whiteBox, blackBox})
	require.NoError(t, err)
	assert.Equal(t, black, out.NRGBAAt(16, 16))

	out, err = c.Apply(frame, []region.Region{blackBox, whiteBox})
	require.NoError(t, err)
	assert.Equal(t, white, out.NRGBAAt(16, 16))
}

func TestApplyPartialOverlapAccumulates(t *testing.T) {
	c := New()
	frame := createTestFrame(64, 64)

	out, err := c.Apply(frame, []region.Region{
		mustRegion(t, 0, 0, 20, 20, region.BlurBlackBox),
		mustRegion(t, 10, 10, 20, 20, region.BlurWhiteBox),
	})
	require.NoError(t, err)

	assert.Equal(t, black, out.NRGBAAt(5, 5), "first region only")
	assert.Equal(t, white, out.NRGBAAt(15, 15), "overlap, second region wins")
	assert.Equal(t, white, out.NRGBAAt(25, 25), "second region only")
	assert.Equal(t, gray, out.NRGBAAt(40, 40), "outside both")
}

func TestApplyClipsRegionToFrame(t *testing.T) {
	c := New()
	frame := createTestFrame(64, 48)

	// Extends 45 columns past the right edge: only the 5 in-frame
	// columns may change.
	out, err := c.Apply(frame, []region.Region{
		mustRegion(t, 59, 0, 50, 48, region.BlurBlackBox),
	})
	require.NoError(t, err)

	for y := 0; y < 48; y++ {
		require.Equal(t, gray, out.NRGBAAt(58, y))
		for x := 59; x < 64; x++ {
			require.Equal(t, black, out.NRGBAAt(x, y))
		}
	}
}

func TestApplyRegionFullyOutsideFrame(t *testing.T) {
	c := New()
	frame := createTestFrame(32, 32)

	tests := []struct {
		name   string
		region region.Region
	}{
		{"past right edge", mustRegion(t, 100, 0, 10, 10, region.BlurBlackBox)},
		{"past bottom edge", mustRegion(t, 0, 100, 10, 10, region.BlurBlackBox)},
		{"starts exactly at edge", mustRegion(t, 32, 0, 10, 10, region.BlurBlackBox)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.Apply(frame, []region.Region{tt.region})
			require.NoError(t, err)
			assert.Equal(t, frame.Pix, out.Pix)
		})
	}
}

func TestApplyBlursOnlyInsideRegion(t *testing.T) {
	c := New()
	frame := createTestFrame(64, 64)

	// A gaussian region must not bleed outside its own bounds even
	// though the kernel reaches past block edges internally.
	out, err := c.Apply(frame, []region.Region{
		mustRegion(t, 16, 16, 16, 16, region.BlurGaussian),
	})
	require.NoError(t, err)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			inside := x >= 16 && x < 32 && y >= 16 && y < 32
			if !inside {
				require.Equal(t, gray, out.NRGBAAt(x, y), "pixel (%d,%d) outside region changed", x, y)
			}
		}
	}
}

func TestApplyNilFrame(t *testing.T) {
	c := New()
	out, err := c.Apply(nil, nil)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrNilFrame)
}

func TestApplyPropagatesTransformError(t *testing.T) {
	c := New()
	frame := createTestFrame(32, 32)

	// Intensity below the minimum can only appear through a bug
	// upstream; the compositor must surface it, not mask it.
	bad := region.Region{
		X: 0, Y: 0, Width: 8, Height: 8,
		BlurType:  region.BlurGaussian,
		Intensity: 5,
		EndFrame:  region.OpenEnd,
	}

	out, err := c.Apply(frame, []region.Region{bad})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, region.ErrInvalidIntensity)
	assert.Contains(t, err.Error(), "region 0")
}

func TestApplyUnknownBlurType(t *testing.T) {
	c := New()
	frame := createTestFrame(16, 16)

	bad := region.Region{
		X: 0, Y: 0, Width: 8, Height: 8,
		BlurType:  region.BlurType("mosaic"),
		Intensity: 50,
		EndFrame:  region.OpenEnd,
	}

	out, err := c.Apply(frame, []region.Region{bad})
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "region 0")
}
