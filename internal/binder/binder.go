// Package binder drives complete builds: it resolves the book list,
// scans each directory, renders both documents, and writes the output
// files plus the library index. One build owns the library exclusively;
// a lock file keeps a second invocation from racing the duration store.
package binder

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/bookbinderapp/bookbinder/internal/config"
	"github.com/bookbinderapp/bookbinder/internal/domain"
	"github.com/bookbinderapp/bookbinder/internal/errors"
	"github.com/bookbinderapp/bookbinder/internal/logger"
	"github.com/bookbinderapp/bookbinder/internal/render"
	"github.com/bookbinderapp/bookbinder/internal/scanner"
)

// lockFileName is created in the library root. The dot prefix keeps it
// out of scans.
const lockFileName = ".bookbinder.lock"

// BookResult summarizes one built book.
type BookResult struct {
	Name            string `json:"name"`
	Chapters        int    `json:"chapters"`
	Tracks          int    `json:"tracks"`
	DurationSeconds int64  `json:"duration_seconds"`
	TextPath        string `json:"text_path"`
	HTMLPath        string `json:"html_path"`
}

// RunResult summarizes a full build run.
type RunResult struct {
	Books     []BookResult  `json:"books"`
	IndexPath string        `json:"index_path"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Binder builds every configured book into text and HTML documents.
type Binder struct {
	cfg      *config.Config
	scanner  *scanner.Scanner
	renderer *render.Renderer
	log      *logger.Logger
	lock     *flock.Flock
}

// New creates a binder.
func New(cfg *config.Config, sc *scanner.Scanner, r *render.Renderer, log *logger.Logger) *Binder {
	if log == nil {
		log = logger.NewNop()
	}
	return &Binder{
		cfg:      cfg,
		scanner:  sc,
		renderer: r,
		log:      log,
		lock:     flock.New(filepath.Join(cfg.Library.Path, lockFileName)),
	}
}

// Run executes one complete build under the single-instance lock.
func (b *Binder) Run(ctx context.Context) (*RunResult, error) {
	release, err := b.lockBuild()
	if err != nil {
		return nil, err
	}
	defer release()

	return b.build(ctx)
}

// lockBuild takes the single-instance lock and returns its release
// function. A held lock is a conflict, not something to wait out.
func (b *Binder) lockBuild() (func(), error) {
	ok, err := b.lock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "acquiring build lock %s", b.lock.Path())
	}
	if !ok {
		return nil, errors.Conflictf("another build is already running, lock %s is held", b.lock.Path())
	}
	return func() {
		if err := b.lock.Unlock(); err != nil {
			b.log.WithError(err).Warn("releasing build lock failed", "path", b.lock.Path())
		}
	}, nil
}

// build processes every book sequentially and finishes with the index
// page. The first error aborts the run; books already written stay on
// disk, the index does not get rewritten.
func (b *Binder) build(ctx context.Context) (*RunResult, error) {
	start := time.Now()

	dirs, err := b.bookDirs()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(b.cfg.Output.Path, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "creating output directory %s", b.cfg.Output.Path)
	}

	result := &RunResult{Books: make([]BookResult, 0, len(dirs))}
	entries := make([]render.IndexEntry, 0, len(dirs))

	for _, dir := range dirs {
		book, err := b.scanner.Scan(ctx, dir)
		if err != nil {
			return nil, err
		}

		br, err := b.writeBook(*book)
		if err != nil {
			return nil, err
		}

		result.Books = append(result.Books, br)
		entries = append(entries, render.IndexEntry{
			Name:     book.Name,
			Href:     filepath.Base(br.HTMLPath),
			Duration: render.HMS(book.Duration()),
			Tracks:   book.TrackCount(),
		})
	}

	indexPath, err := b.writeIndex(entries)
	if err != nil {
		return nil, err
	}

	result.IndexPath = indexPath
	result.Elapsed = time.Since(start)

	b.log.Info("build complete",
		"books", len(result.Books),
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// bookDirs resolves the directories to build. A configured book list is
// used verbatim, in order. Otherwise every non-empty, non-hidden
// immediate subdirectory of the library root is built in sorted order.
func (b *Binder) bookDirs() ([]string, error) {
	if len(b.cfg.Library.Books) > 0 {
		dirs := make([]string, 0, len(b.cfg.Library.Books))
		for _, name := range b.cfg.Library.Books {
			dirs = append(dirs, filepath.Join(b.cfg.Library.Path, name))
		}
		return dirs, nil
	}

	entries, err := os.ReadDir(b.cfg.Library.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "reading library %s", b.cfg.Library.Path)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(b.cfg.Library.Path, entry.Name())
		sub, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeIO, "reading %s", dir)
		}
		if len(sub) == 0 {
			continue
		}
		dirs = append(dirs, dir)
	}

	sort.Strings(dirs)
	return dirs, nil
}

// writeBook renders both documents before writing either, so a render
// failure never leaves a half-updated book on disk.
func (b *Binder) writeBook(book domain.Book) (BookResult, error) {
	text := render.BookText(book)
	if text != "" {
		text += "\n"
	}

	page, err := b.renderer.BookPage(book)
	if err != nil {
		return BookResult{}, err
	}

	textPath := filepath.Join(b.cfg.Output.Path, book.Name+".txt")
	if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
		return BookResult{}, errors.Wrapf(err, errors.CodeIO, "writing %s", textPath)
	}

	htmlPath := filepath.Join(b.cfg.Output.Path, book.Name+".html")
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		return BookResult{}, errors.Wrapf(err, errors.CodeIO, "writing %s", htmlPath)
	}

	b.log.Info("book bound",
		"book", book.Name,
		"chapters", len(book.Chapters),
		"tracks", book.TrackCount(),
		"duration", render.HMS(book.Duration()),
	)

	return BookResult{
		Name:            book.Name,
		Chapters:        len(book.Chapters),
		Tracks:          book.TrackCount(),
		DurationSeconds: book.Duration(),
		TextPath:        textPath,
		HTMLPath:        htmlPath,
	}, nil
}

// writeIndex writes the library index linking every book page.
func (b *Binder) writeIndex(entries []render.IndexEntry) (string, error) {
	page, err := b.renderer.IndexPage(entries)
	if err != nil {
		return "", err
	}

	indexPath := filepath.Join(b.cfg.Output.Path, "index.html")
	if err := os.WriteFile(indexPath, []byte(page), 0o644); err != nil {
		return "", errors.Wrapf(err, errors.CodeIO, "writing %s", indexPath)
	}
	return indexPath, nil
}
