// Package watcher reports files written under a project tree.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/abdidvp/editgate/internal/adapters/outbound/scanner"
)

// DefaultQuietPeriod is how long a path must stay untouched before it is reported.
const DefaultQuietPeriod = 300 * time.Millisecond

// Handler receives a batch of changed files, relative to the watched root, in
// lexical order.
type Handler func(ctx context.Context, paths []string)

// Watcher watches a directory tree with fsnotify.
type Watcher struct {
	root    string
	quiet   time.Duration
	exclude []string
	logger  *zap.SugaredLogger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithQuietPeriod sets the debounce window.
func WithQuietPeriod(d time.Duration) Option {
	return func(w *Watcher) { w.quiet = d }
}

// WithExclude skips additional directory names or relative paths.
func WithExclude(paths ...string) Option {
	return func(w *Watcher) { w.exclude = append(w.exclude, paths...) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a Watcher rooted at root.
func New(root string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:   abs,
		quiet:  DefaultQuietPeriod,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run blocks until ctx is done, calling h for every settled batch of writes.
// Handler calls are sequential.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	scan, err := scanner.New().Scan(w.root, w.exclude...)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", w.root, err)
	}
	for _, d := range scan.Dirs {
		if err := fw.Add(filepath.Join(w.root, d)); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}
	w.logger.Infow("watching", "root", w.root, "dirs", len(scan.Dirs))

	pending := make(map[string]time.Time)
	timer := time.NewTimer(w.quiet)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && w.addDir(fw, ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			rel, ok := w.relevant(ev.Name)
			if !ok {
				continue
			}
			pending[rel] = time.Now()
			timer.Reset(w.quiet)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("watch error", "error", err)

		case <-timer.C:
			batch := settled(pending, w.quiet, time.Now())
			if len(pending) > 0 {
				timer.Reset(w.quiet)
			}
			if len(batch) > 0 {
				h(ctx, batch)
			}
		}
	}
}

// addDir starts watching a newly created directory. It reports whether the
// path was a directory.
func (w *Watcher) addDir(fw *fsnotify.Watcher, path string) bool {
	st, err := os.Stat(path)
	if err != nil || !st.IsDir() {
		return false
	}
	if scanner.Skipped(filepath.Base(path)) {
		return true
	}
	if err := fw.Add(path); err != nil {
		w.logger.Warnw("could not watch new directory", "dir", path, "error", err)
	}
	return true
}

func (w *Watcher) relevant(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	// Editor swap and backup files.
	if strings.HasPrefix(base, ".#") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return "", false
	}
	for _, ex := range w.exclude {
		ex = strings.TrimSuffix(ex, "/")
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return "", false
		}
	}
	return rel, true
}

// settled removes and returns the paths untouched for at least quiet.
func settled(pending map[string]time.Time, quiet time.Duration, now time.Time) []string {
	var out []string
	for p, at := range pending {
		if now.Sub(at) >= quiet {
			out = append(out, p)
			delete(pending, p)
		}
	}
	sort.Strings(out)
	return out
}
