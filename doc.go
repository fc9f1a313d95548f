// Package vidblur obfuscates rectangular regions of video files.
//
// The engine decodes a video frame by frame, applies blur, pixelation,
// or solid fills to configured regions during their scheduled frame
// ranges, and re-encodes the result. It exists for redaction work:
// hiding faces, license plates, screens, documents, and other sensitive
// content before footage is shared.
//
// # Getting Started
//
// Describe the regions to hide in a JSON file:
//
//	{
//	  "regions": [
//	    {
//	      "x": 120, "y": 80, "width": 200, "height": 150,
//	      "blur_type": "gaussian", "intensity": 75,
//	      "pii_type": "face", "start_frame": 0, "end_frame": 300
//	    }
//	  ]
//	}
//
// and run it through Process:
//
//	options := vidblur.NewOptions()
//	options.ConfigPath = "regions.json"
//
//	report, err := vidblur.Process(ctx, "in.mp4", "out.mp4", options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Summary())
//
// # Regions
//
// A region pairs a rectangle with a blur style, an intensity from 10 to
// 100, and a frame range. end_frame of -1 keeps a region active through
// the last frame. Regions are validated on construction and on load;
// out-of-range values are rejected, never clamped. See the region
// package.
//
// # Blur Styles
//
// Four styles exist: "gaussian" softens detail with a gaussian kernel,
// "pixelate" replaces the area with a coarse mosaic, and "black_box" and
// "white_box" cover it entirely. Intensity scales kernel radius and cell
// size; fills ignore it. See the effect package.
//
// # Overlaps and Clipping
//
// Regions overlapping on a frame are applied in config order, each on
// the output of the previous, so the last listed region wins where they
// intersect. Regions reaching past the frame edge affect only the
// in-frame part. See the composite package.
//
// # Video I/O
//
// File processing shells out to ffmpeg and ffprobe, found on PATH or
// named via VIDBLUR_FFMPEG and VIDBLUR_FFPROBE. Programs that already
// hold decoded frames can implement
// video.Source and video.Sink, or use the in-memory buffer
// implementations, and call ProcessStream. Builds tagged "with_cv" add
// gocv-backed I/O for installs that carry OpenCV instead. See the video
// package.
//
// # Reports and Progress
//
// Every run produces a pipeline.Report: a run ID that also tags the
// run's log lines, frame counters, duration, and a BLAKE2b-256 digest
// of the output file. Progress appears in the log every hundred frames
// and through an optional callback.
//
// # Concurrency
//
// Options.Workers composites that many frames in parallel while output
// order and memory bounds are preserved; the default is sequential.
// Output is identical regardless of worker count. Cancelling the
// context stops a run between frames, finalizes the partial output, and
// reports Cancelled rather than an error.
package vidblur
