package video

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ffprobePath returns the probe binary to run, honoring the
// VIDBLUR_FFPROBE override.
func ffprobePath() string {
	if p := os.Getenv("VIDBLUR_FFPROBE"); p != "" {
		return p
	}
	return "ffprobe"
}

// ffprobe's -print_format json layout, reduced to the fields we read.
type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	RFrameRate   string `json:"r_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

// Probe inspects a video file with ffprobe and returns its stream info.
func Probe(ctx context.Context, path string) (Info, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	cmd := exec.CommandContext(ctx, ffprobePath(), args...)
	output, err := cmd.Output()
	if err != nil {
		return Info{}, fmt.Errorf("%w: ffprobe %s: %v", ErrUnreadableSource, path, err)
	}

	info, err := parseProbeOutput(output)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %s: %v", ErrUnreadableSource, path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Probe",
		"path":     path,
		"info":     info.String(),
	}).Debug("Probed video file")

	return info, nil
}

// parseProbeOutput extracts Info from ffprobe's JSON. The frame count
// comes from nb_frames when the container declares it, otherwise from
// duration times frame rate, otherwise stays 0.
func parseProbeOutput(data []byte) (Info, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Info{}, fmt.Errorf("decoding ffprobe output: %v", err)
	}

	var stream *probeStream
	for i := range out.Streams {
		if out.Streams[i].CodecType == "video" {
			stream = &out.Streams[i]
			break
		}
	}
	if stream == nil {
		return Info{}, ErrNoVideoStream
	}

	fps := parseFraction(stream.AvgFrameRate)
	if fps == 0 {
		fps = parseFraction(stream.RFrameRate)
	}

	info := Info{
		Width:  stream.Width,
		Height: stream.Height,
		FPS:    fps,
	}
	if err := info.Validate(); err != nil {
		return Info{}, err
	}

	if n, err := strconv.Atoi(stream.NbFrames); err == nil && n > 0 {
		info.FrameCount = n
	} else {
		duration := parseFloat(stream.Duration)
		if duration == 0 {
			duration = parseFloat(out.Format.Duration)
		}
		if duration > 0 {
			info.FrameCount = int(math.Round(duration * fps))
		}
	}

	return info, nil
}

// parseFraction evaluates ffprobe rate strings like "30000/1001" or
// "25". Malformed or zero-denominator input yields 0.
func parseFraction(s string) float64 {
	if s == "" {
		return 0
	}
	num, den, found := strings.Cut(s, "/")
	n := parseFloat(num)
	if !found {
		return n
	}
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
