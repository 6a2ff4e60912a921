// Package scanner turns a directory of named audio files into a book tree.
//
// A scan walks one book directory, sorts every audio file by its full
// path, parses the five-digit position out of each filename, resolves
// durations through the store, and folds the result into chapters,
// sections, and sub-sections. Any unreadable file or unparseable name
// aborts the scan; a book is rendered whole or not at all.
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bookbinderapp/bookbinder/internal/domain"
	"github.com/bookbinderapp/bookbinder/internal/errors"
	"github.com/bookbinderapp/bookbinder/internal/logger"
	"github.com/bookbinderapp/bookbinder/internal/normalize"
	"github.com/bookbinderapp/bookbinder/internal/store"
	"github.com/bookbinderapp/bookbinder/internal/track"
)

// Audio extension set for file classification (package-level to avoid allocations).
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".m4b":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".aac":  true,
	".wma":  true,
	".wav":  true,
}

// IsAudioExt checks if a file extension is for an audio file.
func IsAudioExt(ext string) bool {
	return audioExtensions[ext]
}

// Scanner orchestrates the book scanning process.
type Scanner struct {
	store   *store.Store
	log     *logger.Logger
	walker  *Walker
	grouper *Grouper
}

// NewScanner creates a new scanner instance.
func NewScanner(st *store.Store, log *logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Scanner{
		store:   st,
		log:     log,
		walker:  NewWalker(log),
		grouper: NewGrouper(),
	}
}

// Scan reads every audio file under dir and assembles the book tree.
// The book is named after the directory. A directory containing no
// audio files yields a book with no chapters, which is not an error.
func (s *Scanner) Scan(ctx context.Context, dir string) (*domain.Book, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "book directory %s not accessible", dir)
	}

	paths, err := s.collectAudioFiles(ctx, dir)
	if err != nil {
		return nil, err
	}

	// Full-path byte order is the authoritative track order. The naming
	// convention sorts X (chapter ten) after the digit chapters.
	sort.Strings(paths)

	records, err := s.resolveTracks(ctx, paths)
	if err != nil {
		return nil, err
	}

	book := &domain.Book{
		Name:     filepath.Base(dir),
		Chapters: s.grouper.Group(records),
	}

	s.log.Info("book scanned",
		"book", book.Name,
		"chapters", len(book.Chapters),
		"tracks", book.TrackCount(),
		"duration_seconds", book.Duration(),
	)
	return book, nil
}

// collectAudioFiles walks dir and gathers the paths of all audio files.
// Files with other extensions (covers, notes) are ignored.
func (s *Scanner) collectAudioFiles(ctx context.Context, dir string) ([]string, error) {
	paths := make([]string, 0, 100)

	for wr := range s.walker.Walk(ctx, dir) {
		if wr.Error != nil {
			return nil, errors.Wrapf(wr.Error, errors.CodeIO, "walking %s", dir)
		}
		if IsAudioExt(strings.ToLower(filepath.Ext(wr.Path))) {
			paths = append(paths, wr.Path)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Debug("walk complete", "dir", dir, "audio_files", len(paths))
	return paths, nil
}

// resolveTracks parses each filename and fills in durations from the
// store. Tracks in the reserved front-matter chapter are resolved like
// every other file, so a broken one still aborts the scan, and only
// then dropped from the result.
func (s *Scanner) resolveTracks(ctx context.Context, paths []string) ([]track.Record, error) {
	records := make([]track.Record, 0, len(paths))

	for _, path := range paths {
		rec, err := track.Parse(normalize.Stem(path))
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeFormat, "file %s", path)
		}
		rec.Path = path

		rec.DurationSeconds, err = s.store.Scan(ctx, path)
		if err != nil {
			return nil, err
		}

		if rec.ChapterNumber == track.IgnoreChapter {
			s.log.Debug("track in reserved chapter, excluded", "path", path)
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}
