// Package pipeline orchestrates whole-video processing.
//
// # Overview
//
// A Runner pulls frames from a video.Source, resolves which regions are
// active on each frame, hands frame and regions to the compositor, and
// writes the results to a video.Sink in frame order. Each run produces a
// Report with counters, timing, and a run identifier that also tags
// every log line of the run.
//
// # Concurrency
//
// With Workers=1 (the default) frames are processed strictly one at a
// time. Higher worker counts composite frames concurrently while a
// single writer keeps output order; at most Workers+2 frames are decoded
// and not yet written at any moment, so memory stays bounded on long
// videos. Both modes produce byte-identical output for the same input.
//
// # Cancellation and Failure
//
// Cancelling the context stops the run between frames and is not an
// error: Run returns the partial Report with Cancelled set. Decoder
// corruption on a single frame is likewise not fatal (the frame passes
// through and FramesSkipped grows), but unreadable input, unwritable
// output, and transform failures abort the run.
package pipeline
