package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vidblur/composite"
	"github.com/opd-ai/vidblur/region"
	"github.com/opd-ai/vidblur/video"
)

// DefaultWorkers is the default number of concurrent compositors.
const DefaultWorkers = 1

// DefaultProgressEvery is the default progress log cadence in frames.
const DefaultProgressEvery = 100

// Config holds runner settings.
type Config struct {
	// Workers is the number of frames composited concurrently. Values
	// below 1 fall back to DefaultWorkers.
	Workers int
	// ProgressEvery is how many written frames between progress log
	// lines. Values below 1 fall back to DefaultProgressEvery.
	ProgressEvery int
	// OnProgress, when set, is called after every written frame with
	// the running count and the declared total (0 if unknown).
	OnProgress func(written, total int)
}

// NewConfig returns a Config with default settings.
func NewConfig() *Config {
	return &Config{
		Workers:       DefaultWorkers,
		ProgressEvery: DefaultProgressEvery,
	}
}

// Runner processes videos frame by frame. A Runner is stateless between
// runs and safe to reuse.
type Runner struct {
	compositor    *composite.Compositor
	workers       int
	progressEvery int
	onProgress    func(int, int)
}

// NewRunner creates a runner from config. A nil config means defaults.
func NewRunner(config *Config) *Runner {
	if config == nil {
		config = NewConfig()
	}

	workers := config.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	progressEvery := config.ProgressEvery
	if progressEvery < 1 {
		progressEvery = DefaultProgressEvery
	}

	return &Runner{
		compositor:    composite.New(),
		workers:       workers,
		progressEvery: progressEvery,
		onProgress:    config.OnProgress,
	}
}

// Run streams every frame of src through the compositor and into sink,
// applying the regions of set that are active on each frame. It returns
// a Report describing the run. A source that yields no frames at all
// fails the run with video.ErrUnreadableSource.
//
// Run does not close src or sink; the caller opened them and keeps that
// responsibility. Cancelling ctx stops the run between frames and
// returns the partial report with Cancelled set rather than an error.
func (r *Runner) Run(ctx context.Context, src video.Source, sink video.Sink, set *region.Set) (*Report, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if sink == nil {
		return nil, ErrNilSink
	}
	if set == nil {
		set = region.NewSet()
	}

	info := src.Info()
	report := &Report{
		RunID:       uuid.New().String(),
		Info:        info,
		Regions:     set.All(),
		Workers:     r.workers,
		TotalFrames: info.FrameCount,
		Started:     time.Now(),
	}

	logrus.WithFields(logrus.Fields{
		"function": "Run",
		"run_id":   report.RunID,
		"video":    info.String(),
		"regions":  len(report.Regions),
		"workers":  r.workers,
	}).Info("Starting video processing")

	progress := newProgressTracker(report.RunID, info.FrameCount, r.progressEvery, r.onProgress)

	var err error
	if r.workers == 1 {
		err = r.runSequential(ctx, src, sink, set, report, progress)
	} else {
		err = r.runParallel(ctx, src, sink, set, report, progress)
	}
	report.Duration = time.Since(report.Started)

	// A source that yields no frames at all classifies as unreadable,
	// the same as one that could not be opened.
	if err == nil && !report.Cancelled && report.FramesWritten() == 0 {
		err = fmt.Errorf("%w: source yielded no frames", video.ErrUnreadableSource)
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Run",
			"run_id":   report.RunID,
			"written":  report.FramesWritten(),
			"error":    err,
		}).Error("Video processing failed")
		return nil, err
	}

	if report.Cancelled {
		logrus.WithFields(logrus.Fields{
			"function": "Run",
			"run_id":   report.RunID,
			"written":  report.FramesWritten(),
		}).Warn("Video processing cancelled")
	} else {
		logrus.WithFields(logrus.Fields{
			"function": "Run",
			"run_id":   report.RunID,
			"written":  report.FramesWritten(),
			"skipped":  report.FramesSkipped,
			"duration": report.Duration.String(),
		}).Info("Video processing complete")
	}

	return report, nil
}

func (r *Runner) runSequential(ctx context.Context, src video.Source, sink video.Sink, set *region.Set, report *Report, progress *progressTracker) error {
	info := src.Info()

	for {
		select {
		case <-ctx.Done():
			report.Cancelled = true
			return nil
		default:
		}

		frame, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil && ctx.Err() != nil {
			// The source was unblocked by cancellation, not by a fault
			// in the stream.
			report.Cancelled = true
			return nil
		}

		var corrupt *video.CorruptFrameError
		if errors.As(err, &corrupt) {
			sub := substituteRaster(report.RunID, info, corrupt)
			if err := sink.Write(video.Frame{Image: sub, Index: corrupt.Index}); err != nil {
				return fmt.Errorf("writing substitute frame %d: %w", corrupt.Index, err)
			}
			report.FramesSkipped++
			progress.Tick()
			continue
		}
		if err != nil {
			return fmt.Errorf("decoding input: %w", err)
		}

		out, err := r.renderFrame(frame, set)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame.Index, err)
		}
		if err := sink.Write(video.Frame{Image: out, Index: frame.Index}); err != nil {
			return fmt.Errorf("writing frame %d: %w", frame.Index, err)
		}
		report.FramesProcessed++
		progress.Tick()
	}
}

// renderFrame composites the regions active on the frame. Frames with no
// active regions pass through without copying.
func (r *Runner) renderFrame(frame video.Frame, set *region.Set) (*image.NRGBA, error) {
	active := set.ActiveAt(frame.Index)
	if len(active) == 0 {
		return frame.Image, nil
	}
	return r.compositor.Apply(frame.Image, active)
}

// substituteRaster picks the output pixels for a corrupt frame: the
// decoder's partial raster when one was recovered, otherwise solid
// black. The substitute keeps the output frame count aligned with the
// input.
func substituteRaster(runID string, info video.Info, corrupt *video.CorruptFrameError) *image.NRGBA {
	logrus.WithFields(logrus.Fields{
		"function": "substituteRaster",
		"run_id":   runID,
		"frame":    corrupt.Index,
		"error":    corrupt.Err,
	}).Warn("Substituting corrupt frame")

	if corrupt.Frame != nil {
		return corrupt.Frame
	}
	return video.BlackFrame(info, corrupt.Index).Image
}
