package pipeline

import "github.com/sirupsen/logrus"

// progressTracker emits periodic progress logs plus an optional caller
// callback. Logging every frame would drown the output on long videos,
// so log lines appear once per interval of written frames.
type progressTracker struct {
	runID      string
	total      int
	every      int
	written    int
	onProgress func(written, total int)
}

func newProgressTracker(runID string, total, every int, onProgress func(int, int)) *progressTracker {
	return &progressTracker{
		runID:      runID,
		total:      total,
		every:      every,
		onProgress: onProgress,
	}
}

// Tick records one written frame.
func (p *progressTracker) Tick() {
	p.written++

	if p.onProgress != nil {
		p.onProgress(p.written, p.total)
	}

	if p.written%p.every == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "Tick",
			"run_id":   p.runID,
			"written":  p.written,
			"total":    p.total,
		}).Info("Processing progress")
	}
}
