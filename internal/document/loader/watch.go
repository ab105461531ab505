package loader

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// Watch loads every document under root that matches patterns, reports
// each result to fn, then keeps reloading files as they are written or
// created until ctx is done. Bursts of events are coalesced over the
// debounce period and each changed file is reported once per burst, in
// path order. Removed files are not reported.
//
// fn is called from the watching goroutine only.
func (l *Loader) Watch(ctx context.Context, root string, patterns []string, fn func(Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	if err := addTree(watcher, root); err != nil {
		return err
	}

	files, err := Expand(root, patterns)
	if err != nil {
		return err
	}
	for _, r := range l.LoadAll(ctx, files) {
		fn(r)
	}
	l.logger.Info("watching for changes", "root", root, "files", len(files))

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !l.track(watcher, root, patterns, event) {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(l.debounce)
			} else {
				timer.Reset(l.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)
			for _, p := range changed {
				if _, err := os.Stat(p); err != nil {
					l.logger.Debug("changed file is gone", "path", p)
					continue
				}
				fn(l.loadOne(ctx, p))
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			l.logger.Warn("fsnotify error", "error", werr)
		}
	}
}

// track decides whether event concerns a document. New directories are
// added to the watcher as a side effect.
func (l *Loader) track(watcher *fsnotify.Watcher, root string, patterns []string, event fsnotify.Event) bool {
	l.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return false
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := addTree(watcher, event.Name); err != nil {
				l.logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
			}
		}
		return false
	}

	rel, err := filepath.Rel(root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return Match(patterns, rel)
}

// addTree watches dir and every directory below it, skipping hidden ones.
func addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, "watching %s", path)
		}
		return nil
	})
}
