package binder

import (
	"context"
	"path/filepath"

	"github.com/bookbinderapp/bookbinder/internal/watcher"
)

// Watch runs an initial build, then rebuilds whenever the watcher
// reports a settled burst of changes. The initial build is fatal like
// any other run; rebuild failures are logged and watching continues,
// since a half-renamed file should not end an authoring session.
func (b *Binder) Watch(ctx context.Context) error {
	release, err := b.lockBuild()
	if err != nil {
		return err
	}
	defer release()

	if _, err := b.build(ctx); err != nil {
		return err
	}

	w, err := watcher.New(b.cfg.Build.SettleDelay, b.log)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, root := range b.watchRoots() {
		if err := w.Add(root); err != nil {
			return err
		}
	}
	w.Start(ctx)

	b.log.Info("watching for changes", "settle_delay", b.cfg.Build.SettleDelay)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Events():
			b.log.Info("library changed, rebuilding", "changed_paths", len(ev.Paths))
			if _, err := b.build(ctx); err != nil {
				b.log.WithError(err).Error("rebuild failed, still watching")
			}
		}
	}
}

// watchRoots returns the directories to watch: the configured books,
// or the whole library root when no fixed list is set so new book
// directories are picked up as they appear.
func (b *Binder) watchRoots() []string {
	if len(b.cfg.Library.Books) == 0 {
		return []string{b.cfg.Library.Path}
	}

	dirs := make([]string, 0, len(b.cfg.Library.Books))
	for _, name := range b.cfg.Library.Books {
		dirs = append(dirs, filepath.Join(b.cfg.Library.Path, name))
	}
	return dirs
}
