// Package main provides a tool to seed a demo library for trying out
// bookbinder without real audiobooks.
//
// It creates correctly named placeholder tracks plus a prefilled
// duration cache, so a full build runs without any media tool installed.
//
// Usage:
//
//	go run ./cmd/seed -library ~/bookbinder-demo
//	go run ./cmd/bookbinder -library ~/bookbinder-demo
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bookbinderapp/bookbinder/internal/store"
)

var library = flag.String("library", "", "Directory to create the demo library in")

// Two small books covering the interesting naming cases: a reserved
// front-matter track, multi-track sub-sections, and chapter ten.
var books = map[string][]string{
	"winter-journal": {
		"10111.mp3",
		"11111.mp3", "11112.mp3", "11121.mp3", "11211.mp3",
		"12111.mp3", "12121.mp3",
	},
	"field-notes": {
		"21111.mp3", "21112.mp3", "22111.mp3", "2X111.mp3",
	},
}

// seedProber invents plausible durations instead of decoding audio.
type seedProber struct {
	rng *rand.Rand
}

func (p *seedProber) Probe(_ context.Context, _ string) (int64, error) {
	return 60 + p.rng.Int63n(540), nil
}

func main() {
	flag.Parse()

	root := *library
	if root == "" {
		log.Fatal("Usage: seed -library <dir>")
	}

	fmt.Printf("Seeding demo library at: %s\n", root)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cachePath := filepath.Join(root, ".duration-cache.json")

	s, err := store.Open(cachePath, &seedProber{rng: rng}, nil)
	if err != nil {
		log.Fatalf("Failed to open duration cache: %v", err)
	}

	names := make([]string, 0, len(books))
	for name := range books {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx := context.Background()
	tracks := 0

	for _, name := range names {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create %s: %v", dir, err)
		}

		for _, file := range books[name] {
			path := filepath.Join(dir, file)
			if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
				log.Fatalf("Failed to create %s: %v", path, err)
			}
			// Prefill the cache so a build never needs a real probe.
			if _, err := s.Scan(ctx, path); err != nil {
				log.Fatalf("Failed to cache duration for %s: %v", path, err)
			}
			tracks++
		}

		fmt.Printf("  %s: %d tracks\n", name, len(books[name]))
	}

	fmt.Printf("\nSeeded %d books (%d tracks)\n", len(names), tracks)
	fmt.Printf("Duration cache: %s (%d entries)\n", cachePath, s.Len())
}
