// Package main provides a quick duration check for audio files.
//
// Usage:
//
//	probe-test track.mp3 [more files ...]
//	probe-test -native book/11111.m4b
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/bookbinderapp/bookbinder/internal/render"
	"github.com/bookbinderapp/bookbinder/internal/scanner/audio"
)

var (
	native = flag.Bool("native", false, "Decode durations in-process instead of invoking the probe binary")
	binary = flag.String("probe-bin", "ffmpeg", "Media tool used to probe durations")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("Usage: probe-test [-native] [-probe-bin ffmpeg] <audio-file> [...]")
	}

	var prober audio.Prober = audio.NewFFmpegProber(*binary)
	if *native {
		prober = audio.NewNativeProber()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, path := range flag.Args() {
		seconds, err := prober.Probe(ctx, path)
		if err != nil {
			log.Fatalf("Failed to probe %s: %v", path, err)
		}
		fmt.Printf("%s: %d sec (%s)\n", path, seconds, render.HMS(seconds))
	}
}
