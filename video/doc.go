// Package video provides frame-level access to video files.
//
// This package decodes videos into a stream of RGBA frames and encodes
// processed frames back out, hiding the container and codec details from
// the rest of the engine.
//
// # Sources and Sinks
//
// A Source yields decoded frames in presentation order until io.EOF. A
// Sink accepts frames in the order they should appear in the output.
// Three implementations exist:
//
//   - FileSource/FileSink shell out to ffmpeg and stream raw RGBA pixels
//     over pipes. This is the default backend and requires the ffmpeg and
//     ffprobe binaries on PATH (VIDBLUR_FFMPEG and VIDBLUR_FFPROBE
//     override the lookup). The decoder lives and dies with the context
//     given to OpenFile; the encoder runs until Close, which signals
//     end-of-input so ffmpeg can finalize the container even after a
//     cancelled run.
//   - BufferSource/BufferSink hold frames in memory. They exist for tests
//     and for embedding the engine in programs that produce frames
//     themselves.
//   - OpenCVSource/OpenCVSink (build tag "with_cv") use gocv instead of
//     spawning processes, for installs that already carry OpenCV.
//
// # Corrupt Frames
//
// A decoder that cannot produce a complete frame returns *CorruptFrameError
// carrying the frame index and, when salvageable, a partial raster. Callers
// decide whether to substitute, skip, or abort; the source itself keeps no
// opinion.
//
// Example:
//
//	src, err := video.OpenFile(ctx, "in.mp4")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	for {
//	    frame, err := src.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // ...
//	}
package video
