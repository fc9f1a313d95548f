package pipeline

import (
	"fmt"
	"time"

	"github.com/opd-ai/vidblur/region"
	"github.com/opd-ai/vidblur/video"
)

// Report summarizes one processing run.
type Report struct {
	// RunID uniquely identifies the run in logs and tooling.
	RunID string
	// Info is the input stream description.
	Info video.Info
	// Regions is a copy of the region list the run applied, in set
	// order, kept so the report records what was obscured.
	Regions []region.Region
	// Workers is the parallelism the run used.
	Workers int
	// FramesProcessed counts frames that went through the compositor,
	// including frames with no active regions.
	FramesProcessed int
	// FramesSkipped counts corrupt frames written as substitutes.
	FramesSkipped int
	// TotalFrames is the container's declared frame count, 0 if unknown.
	TotalFrames int
	// Started is when the run began.
	Started time.Time
	// Duration is wall-clock time from start to finish.
	Duration time.Duration
	// Cancelled reports whether the context was cancelled mid-run.
	Cancelled bool
	// OutputDigest is the BLAKE2b-256 hex digest of the finalized
	// output file, when the caller works with files.
	OutputDigest string
}

// FramesWritten returns the total number of frames in the output.
func (r *Report) FramesWritten() int {
	return r.FramesProcessed + r.FramesSkipped
}

// Summary renders the report as a single human-readable line.
func (r *Report) Summary() string {
	s := fmt.Sprintf("run %s: wrote %d frames", r.RunID, r.FramesWritten())
	if r.TotalFrames > 0 {
		s = fmt.Sprintf("run %s: wrote %d of %d frames", r.RunID, r.FramesWritten(), r.TotalFrames)
	}
	if r.FramesSkipped > 0 {
		s += fmt.Sprintf(" (%d substituted)", r.FramesSkipped)
	}
	s += fmt.Sprintf(" in %s", r.Duration.Round(time.Millisecond))
	if r.Cancelled {
		s += " [cancelled]"
	}
	return s
}
