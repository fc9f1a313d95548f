// Package main implements the vidblur command line tool.
//
// Usage:
//
//	vidblur -config regions.json [-workers 4] input.mp4 output.mp4
//	vidblur -probe input.mp4
//
// Region configs can also point at the tool through the VIDBLUR_CONFIG
// and VIDBLUR_WORKERS environment variables or a .env file; log level
// follows VIDBLUR_LOG_LEVEL unless -verbose or -quiet is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vidblur"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err == nil {
		logrus.Debug("Loaded environment variables from .env file")
	}

	config := flag.String("config", envOr("VIDBLUR_CONFIG", ""), "regions JSON file (required)")
	workers := flag.Int("workers", envOrInt("VIDBLUR_WORKERS", 1), "concurrent frame compositors")
	probe := flag.Bool("probe", false, "print stream info for one file and exit")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	quiet := flag.Bool("quiet", false, "only log warnings and errors")
	noDigest := flag.Bool("no-digest", false, "skip hashing the output file")
	flag.Usage = usage
	flag.Parse()

	setupLogging(*verbose, *quiet)

	// Ctrl-C stops between frames and still finalizes the partial
	// output.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	if *probe {
		if len(args) != 1 {
			usage()
			os.Exit(2)
		}
		runProbe(ctx, args[0])
		return
	}
	if len(args) != 2 || *config == "" {
		usage()
		os.Exit(2)
	}
	input, output := args[0], args[1]

	options := vidblur.NewOptions()
	options.ConfigPath = *config
	options.Workers = *workers
	options.ComputeDigest = !*noDigest

	report, err := vidblur.Process(ctx, input, output, options)
	if err != nil {
		logrus.WithError(err).Fatal("Processing failed")
	}

	fmt.Println(report.Summary())
	if report.OutputDigest != "" {
		fmt.Printf("output digest: blake2b:%s\n", report.OutputDigest)
	}
	if report.Cancelled {
		os.Exit(130)
	}
}

// runProbe prints what the engine would learn about the file before
// processing it: stream geometry, duration, and size on disk.
func runProbe(ctx context.Context, path string) {
	info, err := vidblur.Probe(ctx, path)
	if err != nil {
		logrus.WithError(err).Fatal("Probe failed")
	}

	fmt.Println(info.String())
	if info.FPS > 0 && info.FrameCount > 0 {
		fmt.Printf("duration: %.2fs\n", float64(info.FrameCount)/info.FPS)
	}
	if stat, err := os.Stat(path); err == nil {
		fmt.Printf("size: %.2f MB\n", float64(stat.Size())/(1024*1024))
	}
}

func setupLogging(verbose, quiet bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	switch {
	case verbose:
		logrus.SetLevel(logrus.DebugLevel)
	case quiet:
		logrus.SetLevel(logrus.WarnLevel)
	default:
		logrus.SetLevel(envLevel())
	}
}

// envLevel reads VIDBLUR_LOG_LEVEL, falling back to info on anything
// logrus does not recognize.
func envLevel() logrus.Level {
	if v := os.Getenv("VIDBLUR_LOG_LEVEL"); v != "" {
		if level, err := logrus.ParseLevel(v); err == nil {
			return level
		}
	}
	return logrus.InfoLevel
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -config regions.json [flags] input.mp4 output.mp4\n       %s -probe input.mp4\n\nFlags:\n", os.Args[0], os.Args[0])
	flag.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
