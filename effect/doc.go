// Package effect implements the per-region pixel transforms: gaussian blur,
// pixelation, and solid black/white fills.
//
// # Overview
//
// Each transform is a pure function over a pixel block: same dimensions in
// and out, no retained state, no mutation of the input. The set of transforms
// is closed and keyed by region.BlurType through a registry:
//
//	tr, err := effect.ForType(region.BlurGaussian)
//	if err != nil {
//	    // unknown blur type; values that passed region validation
//	    // never hit this
//	}
//	out, err := tr.Apply(block, 70)
//
// # Intensity
//
// Intensity is an integer in [10,100], normalized internally to [0.1,1.0].
// Its meaning is transform-specific:
//
//   - gaussian: kernel radius = 1 + 24×norm, so 10% ≈ radius 3 and
//     100% = radius 25
//   - pixelate: cell side = 2 + ⌊18×norm⌋, so 10% = 3px cells and
//     100% = 20px cells
//   - black_box / white_box: ignored entirely (documented, not an error)
//
// Out-of-range intensities are rejected with an error, never clamped: the
// region package is the gate for bad values and anything slipping past it is
// a caller bug worth surfacing.
//
// # Block Contract
//
// Transforms operate on blocks the compositor has already clipped to the
// frame, so edge handling inside a transform only concerns the block's own
// borders (the gaussian kernel replicates edge pixels there). Blocks may be
// sub-image views; outputs are always fresh buffers with origin (0,0).
package effect
