package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bookbinderapp/bookbinder/internal/errors"
	"github.com/bookbinderapp/bookbinder/internal/logger"
)

// Walker traverses the filesystem and discovers files.
type Walker struct {
	log *logger.Logger
}

// NewWalker creates a new walker.
func NewWalker(log *logger.Logger) *Walker {
	if log == nil {
		log = logger.NewNop()
	}
	return &Walker{log: log}
}

// WalkResult represents a file discovered during walking. A result with a
// non-nil Error is the last one sent; the walk does not continue past a
// filesystem failure.
type WalkResult struct {
	Error   error
	Path    string
	RelPath string
}

// Walk traverses a directory and streams discovered files.
// Returns a channel that will receive results.
// Channel closes when the walk is complete, aborted, or the context is
// canceled. Hidden files and directories are skipped.
func (w *Walker) Walk(ctx context.Context, rootPath string) <-chan WalkResult {
	results := make(chan WalkResult, 100) // Buffered channel for better performance

	go func() {
		defer close(results)

		err := filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
			// Check context cancellation.
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			// A walk error means the tree cannot be read completely, and a
			// partial book must never be rendered.
			if err != nil {
				return err
			}

			// Skip hidden files/directories. This also keeps the duration
			// cache file out of the scan.
			if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Skip directories (we only want files).
			if d.IsDir() {
				return nil
			}

			// Compute relative path.
			relPath, err := filepath.Rel(rootPath, path)
			if err != nil {
				return err
			}

			// Send result.
			result := WalkResult{
				Path:    path,
				RelPath: relPath,
			}

			select {
			case results <- result:
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		})

		if err != nil && !errors.Is(err, context.Canceled) {
			w.log.WithError(err).Debug("walk aborted", "root", rootPath)
			select {
			case results <- WalkResult{Error: err}:
			case <-ctx.Done():
			}
		}
	}()

	return results
}
