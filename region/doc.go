// Package region defines the declarative data model for video obfuscation:
// rectangular blur regions scoped in space and time, and the ordered sets
// they are collected into.
//
// # Overview
//
// The region package provides two primary components:
//
//   - Region: An immutable (space, time, effect) descriptor for one
//     obfuscation area: a pixel rectangle, a blur type with intensity,
//     and an inclusive frame range
//   - Set: An ordered collection of regions whose insertion order defines
//     the paint order used when regions overlap on a frame
//
// # Regions
//
// Construct regions directly or through the validating constructor:
//
//	r, err := region.New(120, 40, 200, 60, region.BlurGaussian, 70)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.PIIType = "email"
//	r.StartFrame = 30
//	r.EndFrame = 150
//
// A region with EndFrame == region.OpenEnd (-1) stays active until the end
// of the video. Bounds may extend past the frame edges; clipping happens at
// apply time, never at creation.
//
// # Sets and Persistence
//
// Sets serialize to the JSON descriptor format shared with the editing UI:
//
//	{"regions": [{"x": 120, "y": 40, "width": 200, "height": 60,
//	              "blur_type": "gaussian", "intensity": 70,
//	              "pii_type": "email", "start_frame": 30, "end_frame": 150}]}
//
//	set, err := region.LoadFile("regions.json")
//	if errors.Is(err, region.ErrMalformedConfig) {
//	    // a descriptor was missing a field or out of range
//	}
//
// Loading is fail-fast: the first invalid descriptor aborts the load and the
// error names the offending region index and field. A redaction tool must not
// silently drop a region the operator asked for, so nothing is ever skipped
// or coerced. Unknown JSON fields are ignored for forward compatibility.
//
// # Activation
//
// Set.ActiveAt answers which regions cover a frame index, preserving set
// order:
//
//	for _, r := range set.ActiveAt(frameIndex) {
//	    // apply r's transform
//	}
//
// # Thread Safety
//
// A Set is not safe for concurrent mutation. The processing pipeline treats
// it as read-only for the duration of a run; mutate only between runs.
package region
