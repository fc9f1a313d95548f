package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vidblur/region"
	"github.com/opd-ai/vidblur/video"
)

func runWithWorkers(t *testing.T, workers, frames int, set *region.Set) *video.BufferSink {
	t.Helper()
	cfg := NewConfig()
	cfg.Workers = workers

	src := video.NewBufferSource(testInfo(frames), makeFrames(frames))
	sink := video.NewBufferSink()

	report, err := NewRunner(cfg).Run(context.Background(), src, sink, set)
	require.NoError(t, err)
	require.Equal(t, frames, report.FramesProcessed)
	require.Equal(t, workers, report.Workers)
	return sink
}

func TestParallelMatchesSequential(t *testing.T) {
	const frames = 60
	set := boxSet(t, 10, 40)

	sequential := runWithWorkers(t, 1, frames, set)
	parallel := runWithWorkers(t, 4, frames, set)

	seqFrames := sequential.Frames()
	parFrames := parallel.Frames()
	require.Len(t, parFrames, len(seqFrames))

	for i := range seqFrames {
		require.Equal(t, seqFrames[i].Index, parFrames[i].Index)
		require.Equal(t, seqFrames[i].Image.Pix, parFrames[i].Image.Pix,
			"frame %d differs between modes", i)
	}
}

func TestParallelPreservesFrameOrder(t *testing.T) {
	sink := runWithWorkers(t, 8, 100, boxSet(t, 0, region.OpenEnd))

	out := sink.Frames()
	require.Len(t, out, 100)
	for i, frame := range out {
		require.Equal(t, i, frame.Index)
		// The index tag sits outside the region and survives.
		require.Equal(t, uint8(i), frame.Image.NRGBAAt(0, 0).R)
	}
}

func TestParallelPassesCorruptFrameThrough(t *testing.T) {
	cfg := NewConfig()
	cfg.Workers = 4

	src := video.NewBufferSource(testInfo(20), makeFrames(20))
	src.BreakFrame(7, errors.New("bitstream damaged"))
	sink := video.NewBufferSink()

	report, err := NewRunner(cfg).Run(context.Background(), src, sink, boxSet(t, 0, region.OpenEnd))
	require.NoError(t, err)
	assert.Equal(t, 19, report.FramesProcessed)
	assert.Equal(t, 1, report.FramesSkipped)

	out := sink.Frames()
	require.Len(t, out, 20)
	for i, frame := range out {
		require.Equal(t, i, frame.Index)
	}
	// The broken frame keeps its recovered raster and skips compositing.
	assert.Equal(t, uint8(7), out[7].Image.NRGBAAt(0, 0).R)
	assert.Equal(t, frameGray, out[7].Image.NRGBAAt(8, 8))
	assert.Equal(t, black, out[6].Image.NRGBAAt(8, 8))
}

func TestParallelSinkFailureAborts(t *testing.T) {
	cfg := NewConfig()
	cfg.Workers = 4

	src := video.NewBufferSource(testInfo(50), makeFrames(50))
	sink := video.NewBufferSink()
	sink.FailOn(25, errors.New("disk full"))

	report, err := NewRunner(cfg).Run(context.Background(), src, sink, boxSet(t, 0, region.OpenEnd))
	assert.Nil(t, report)
	assert.ErrorIs(t, err, video.ErrUnwritableDestination)
}

func TestParallelCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := NewConfig()
	cfg.Workers = 4
	cfg.OnProgress = func(written, total int) {
		if written == 5 {
			cancel()
		}
	}

	src := video.NewBufferSource(testInfo(100), makeFrames(100))
	sink := video.NewBufferSink()

	report, err := NewRunner(cfg).Run(ctx, src, sink, boxSet(t, 0, region.OpenEnd))
	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Equal(t, 5, report.FramesWritten())
	assert.Len(t, sink.Frames(), 5)
}

func TestParallelEmptySourceIsUnreadable(t *testing.T) {
	cfg := NewConfig()
	cfg.Workers = 4

	src := video.NewBufferSource(video.Info{Width: 16, Height: 16, FPS: 30}, nil)
	sink := video.NewBufferSink()

	report, err := NewRunner(cfg).Run(context.Background(), src, sink, boxSet(t, 0, region.OpenEnd))
	require.ErrorIs(t, err, video.ErrUnreadableSource, "zero frames classifies as unreadable")
	assert.Nil(t, report)
}

func TestParallelSourceAbortReportsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := NewConfig()
	cfg.Workers = 3

	src := &abortingSource{frames: makeFrames(8), dieAt: 4, cancel: cancel}
	sink := video.NewBufferSink()

	report, err := NewRunner(cfg).Run(ctx, src, sink, boxSet(t, 0, region.OpenEnd))
	require.NoError(t, err, "an abort driven by cancellation is not a failure")
	assert.True(t, report.Cancelled)
	assert.LessOrEqual(t, report.FramesWritten(), 4)
}
