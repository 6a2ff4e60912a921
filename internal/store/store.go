// Package store persists probed track durations between builds.
//
// The store is a single human-readable JSON file mapping absolute file
// paths to whole seconds. It is written through: every new probe result
// rewrites the whole file before the scan continues, so a failed probe
// later in a build never loses results already paid for. Deleting the
// file simply forces a full re-probe on the next build.
package store

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bookbinderapp/bookbinder/internal/errors"
	"github.com/bookbinderapp/bookbinder/internal/logger"
	"github.com/bookbinderapp/bookbinder/internal/scanner/audio"
)

// Entry is one persisted path → seconds mapping.
type Entry struct {
	Path    string `json:"path"`
	Seconds int64  `json:"seconds"`
}

// Store provides cached access to track durations.
type Store struct {
	path   string
	prober audio.Prober
	log    *logger.Logger

	mu      sync.RWMutex
	entries map[string]int64
}

// Open loads the persisted mapping at path. A missing file starts an
// empty store; a file that exists but does not parse is a fatal
// cache-corruption error, never silently discarded. The prober may be
// nil for read-only inspection, in which case every miss fails.
func Open(path string, prober audio.Prober, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNop()
	}

	s := &Store{
		path:    path,
		prober:  prober,
		log:     log,
		entries: make(map[string]int64),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("no duration cache yet", "path", path)
			return s, nil
		}
		return nil, errors.Wrapf(err, errors.CodeIO, "reading duration cache %s", path)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			return nil, errors.CacheCorruptf("duration cache %s is not valid JSON, fix or delete it", path).WithCause(err)
		}
	}

	log.Debug("duration cache loaded", "path", path, "entries", len(s.entries))
	return s, nil
}

// Scan returns the duration for path. A known path returns the stored
// value without touching the prober. An unknown path is probed, recorded,
// and the whole mapping is persisted before Scan returns.
func (s *Store) Scan(ctx context.Context, path string) (int64, error) {
	s.mu.RLock()
	seconds, ok := s.entries[path]
	s.mu.RUnlock()
	if ok {
		return seconds, nil
	}

	if s.prober == nil {
		return 0, errors.Internalf("store opened without a prober, cannot resolve %s", path)
	}

	seconds, err := s.prober.Probe(ctx, path)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.entries[path] = seconds
	err = s.save()
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	s.log.Debug("duration probed", "path", path, "seconds", seconds)
	return seconds, nil
}

// Len returns the number of cached paths.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Entries returns all cached mappings sorted by path.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.entries))
	for path, seconds := range s.entries {
		entries = append(entries, Entry{Path: path, Seconds: seconds})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries
}

// save rewrites the persisted mapping atomically via a temp file. The
// JSON encoder sorts map keys, so the file is stable and diffable.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "encoding duration cache")
	}

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, errors.CodeIO, "creating cache directory %s", dir)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.CodeIO, "writing duration cache %s", tmpPath)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return errors.Wrapf(err, errors.CodeIO, "replacing duration cache %s", s.path)
	}

	return nil
}
