package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/opd-ai/vidblur/region"
	"github.com/opd-ai/vidblur/video"
)

// renderJob carries one frame through the parallel path. Every job goes
// into the pending channel in decode order; jobs that need compositing
// also go to the workers. The writer consumes pending in order and waits
// on each job's result, so output order never depends on which worker
// finishes first.
type renderJob struct {
	frame      video.Frame
	regions    []region.Region
	substitute bool
	ready      bool
	result     chan renderResult
}

type renderResult struct {
	img *image.NRGBA
	err error
}

// runParallel composites frames on r.workers goroutines. In-flight
// frames are bounded by the pending channel capacity, so memory use
// stays flat regardless of video length.
func (r *Runner) runParallel(ctx context.Context, src video.Source, sink video.Sink, set *region.Set, report *Report, progress *progressTracker) error {
	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan renderJob)
	pending := make(chan renderJob, r.workers)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				img, err := r.compositor.Apply(job.frame.Image, job.regions)
				if err != nil {
					err = fmt.Errorf("frame %d: %w", job.frame.Index, err)
				}
				job.result <- renderResult{img: img, err: err}
			}
		}()
	}

	info := src.Info()
	go func() {
		// Closing jobs releases the workers; closing pending tells the
		// writer the stream is over.
		defer close(pending)
		defer close(jobs)

		for {
			if workerCtx.Err() != nil {
				return
			}

			frame, err := src.Next()
			if err == io.EOF {
				return
			}

			job := renderJob{result: make(chan renderResult, 1)}
			fatal := false

			var corrupt *video.CorruptFrameError
			switch {
			case err != nil && workerCtx.Err() != nil:
				// The source was unblocked by cancellation; stop
				// producing. The post-drain check marks the run
				// cancelled.
				return
			case errors.As(err, &corrupt):
				img := substituteRaster(report.RunID, info, corrupt)
				job.frame = video.Frame{Image: img, Index: corrupt.Index}
				job.substitute = true
				job.ready = true
				job.result <- renderResult{img: img}
			case err != nil:
				job.ready = true
				fatal = true
				job.result <- renderResult{err: fmt.Errorf("decoding input: %w", err)}
			default:
				job.frame = frame
				job.regions = set.ActiveAt(frame.Index)
				if len(job.regions) == 0 {
					job.ready = true
					job.result <- renderResult{img: frame.Image}
				}
			}

			select {
			case pending <- job:
			case <-workerCtx.Done():
				return
			}

			// Once a job is visible to the writer it must reach a
			// worker, or the writer would wait on its result forever.
			// Workers drain the jobs channel until it closes, so this
			// send always completes.
			if !job.ready {
				jobs <- job
			}

			if fatal {
				return
			}
		}
	}()

	var failure error
	for job := range pending {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		res := <-job.result
		if res.err != nil {
			failure = res.err
			break
		}

		if err := sink.Write(video.Frame{Image: res.img, Index: job.frame.Index}); err != nil {
			failure = fmt.Errorf("writing frame %d: %w", job.frame.Index, err)
			break
		}

		if job.substitute {
			report.FramesSkipped++
		} else {
			report.FramesProcessed++
		}
		progress.Tick()
	}

	// Stop the reader, discard whatever it already queued, and wait for
	// the workers. The drain ends when the reader closes pending.
	cancel()
	for range pending {
	}
	wg.Wait()

	// The in-loop check only runs when a job was in flight; a cancel
	// that lands on an empty queue is caught here.
	if failure == nil && ctx.Err() != nil {
		report.Cancelled = true
	}

	return failure
}
