// Package vidblur obfuscates rectangular regions of video files.
//
// Regions carry a blur style (gaussian, pixelate, black or white box), an
// intensity, and a frame range, so faces, license plates, screens, and
// other sensitive content can be hidden for exactly the frames where they
// appear. Region lists live in JSON files that tooling can generate.
//
// Example:
//
//	options := vidblur.NewOptions()
//	options.ConfigPath = "regions.json"
//	options.Workers = 4
//
//	report, err := vidblur.Process(ctx, "meeting.mp4", "meeting_redacted.mp4", options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Summary())
//
// Process shells out to ffmpeg and ffprobe, found on PATH or named via
// VIDBLUR_FFMPEG and VIDBLUR_FFPROBE. For frame streams that are not
// files (or for custom decode stacks), build a video.Source and
// video.Sink and use ProcessStream instead.
package vidblur

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vidblur/pipeline"
	"github.com/opd-ai/vidblur/region"
	"github.com/opd-ai/vidblur/video"
)

// ErrNoRegions is returned when neither a region set nor a config path
// was provided. A redaction run with no regions at all is almost always
// a forgotten flag, so it must be requested explicitly with an empty
// set.
var ErrNoRegions = errors.New("no regions provided")

// Options contains configuration for a processing run.
type Options struct {
	// Regions is the region set to apply. When nil, ConfigPath is
	// loaded instead.
	Regions *region.Set
	// ConfigPath is a regions JSON file, used when Regions is nil.
	ConfigPath string
	// Workers is the number of frames composited concurrently.
	Workers int
	// ProgressEvery is the progress log cadence in frames.
	ProgressEvery int
	// OnProgress, when set, is called after every written frame.
	OnProgress func(written, total int)
	// ComputeDigest controls whether the finished output file is
	// digested into Report.OutputDigest.
	ComputeDigest bool
}

// NewOptions creates a new default Options.
func NewOptions() *Options {
	return &Options{
		Workers:       pipeline.DefaultWorkers,
		ProgressEvery: pipeline.DefaultProgressEvery,
		ComputeDigest: true,
	}
}

// Process reads inputPath, applies the configured regions to every
// frame, and writes the result to outputPath. The returned report
// describes the run; cancelling ctx stops processing cleanly and the
// partial output is still finalized.
func Process(ctx context.Context, inputPath, outputPath string, options *Options) (*pipeline.Report, error) {
	if options == nil {
		options = NewOptions()
	}

	set, err := resolveRegions(options)
	if err != nil {
		return nil, err
	}

	src, err := video.OpenFile(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	sink, err := video.CreateFile(outputPath, src.Info())
	if err != nil {
		return nil, err
	}

	report, err := runPipeline(ctx, src, sink, set, options)
	if err != nil {
		sink.Close()
		return nil, err
	}

	// An unfinalized container is not a usable artifact, so a close
	// failure fails the run even though every frame was written.
	if err := sink.Close(); err != nil {
		return nil, err
	}

	if options.ComputeDigest {
		digest, err := pipeline.DigestFile(outputPath)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Process",
				"run_id":   report.RunID,
				"path":     outputPath,
				"error":    err,
			}).Warn("Could not digest output file")
		} else {
			report.OutputDigest = digest
		}
	}

	return report, nil
}

// ProcessStream applies the region set to an already-open frame stream.
// The caller keeps ownership of src and sink and closes them after the
// call.
func ProcessStream(ctx context.Context, src video.Source, sink video.Sink, set *region.Set, options *Options) (*pipeline.Report, error) {
	if options == nil {
		options = NewOptions()
	}
	if set == nil {
		return nil, ErrNoRegions
	}
	return runPipeline(ctx, src, sink, set, options)
}

// Probe returns the stream description of a video file without decoding
// any frames.
func Probe(ctx context.Context, path string) (video.Info, error) {
	return video.Probe(ctx, path)
}

// LoadRegions reads a region config file.
func LoadRegions(path string) (*region.Set, error) {
	return region.LoadFile(path)
}

func resolveRegions(options *Options) (*region.Set, error) {
	if options.Regions != nil {
		return options.Regions, nil
	}
	if options.ConfigPath == "" {
		return nil, ErrNoRegions
	}
	return region.LoadFile(options.ConfigPath)
}

func runPipeline(ctx context.Context, src video.Source, sink video.Sink, set *region.Set, options *Options) (*pipeline.Report, error) {
	runner := pipeline.NewRunner(&pipeline.Config{
		Workers:       options.Workers,
		ProgressEvery: options.ProgressEvery,
		OnProgress:    options.OnProgress,
	})
	return runner.Run(ctx, src, sink, set)
}
