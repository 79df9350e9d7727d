// Package watch reports changed asset files, coalescing bursts of events.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Handler processes one changed file. Errors are logged and watching goes on.
type Handler func(ctx context.Context, path string) error

// Watcher watches the directories of glob patterns and calls a Handler for
// every created or written file matching one of the patterns.
//
// Each file is handled at most once per interval. Events arriving sooner are
// delayed and merged, so the last write is never lost. Removals and renames
// are ignored.
type Watcher struct {
	Logger *slog.Logger

	patterns []string
	interval time.Duration
	fsw      *fsnotify.Watcher
	now      func() time.Time

	limiters map[string]*rate.Limiter
	pending  map[string]time.Time
	timer    *time.Timer
}

// New watches the directories holding patterns.
func New(patterns []string, interval time.Duration) (*Watcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no pattern to watch")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("invalid interval %s", interval)
	}
	dirs, err := watchDirs(patterns)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}
	clean := make([]string, len(patterns))
	for i, p := range patterns {
		clean[i] = filepath.Clean(p)
	}
	return &Watcher{
		Logger:   slog.Default(),
		patterns: clean,
		interval: interval,
		fsw:      fsw,
		now:      time.Now,
		limiters: map[string]*rate.Limiter{},
		pending:  map[string]time.Time{},
	}, nil
}

// Run dispatches changes to fn until ctx is done. The watcher is closed on
// return.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	defer func() { _ = w.fsw.Close() }()
	w.timer = time.NewTimer(time.Hour)
	w.timer.Stop()
	defer w.timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
			w.flush(ctx, fn)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.Logger.WarnContext(ctx, "Error watching files", "err", err)
		case <-w.timer.C:
			w.flush(ctx, fn)
		}
	}
}

// Matches reports whether path matches one of the patterns.
func (w *Watcher) Matches(path string) bool {
	path = filepath.Clean(path)
	for _, p := range w.patterns {
		if ok, _ := filepath.Match(p, path); ok {
			return true
		}
	}
	return false
}

// handle records event as pending when it is relevant.
func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	path := filepath.Clean(event.Name)
	if !w.Matches(path) {
		return
	}
	if _, ok := w.pending[path]; ok {
		return
	}
	lim := w.limiters[path]
	if lim == nil {
		lim = rate.NewLimiter(rate.Every(w.interval), 1)
		w.limiters[path] = lim
	}
	now := w.now()
	r := lim.ReserveN(now, 1)
	w.pending[path] = now.Add(r.DelayFrom(now))
}

// flush calls fn for every pending path that is due, in lexical order, then
// arms the timer for the next one.
func (w *Watcher) flush(ctx context.Context, fn Handler) {
	now := w.now()
	var due []string
	var next time.Time
	for p, at := range w.pending {
		if !at.After(now) {
			due = append(due, p)
		} else if next.IsZero() || at.Before(next) {
			next = at
		}
	}
	slices.Sort(due)
	for _, p := range due {
		delete(w.pending, p)
		if err := fn(ctx, p); err != nil {
			w.Logger.ErrorContext(ctx, "Failed to process file", "file", p, "err", err)
		}
	}
	if !next.IsZero() && w.timer != nil {
		w.timer.Reset(next.Sub(now))
	}
}

// watchDirs returns the existing directories holding the files matched by
// patterns.
func watchDirs(patterns []string) ([]string, error) {
	var dirs []string
	for _, p := range patterns {
		dir := filepath.Dir(filepath.Clean(p))
		matches := []string{dir}
		if strings.ContainsAny(dir, `*?[`) {
			var err error
			if matches, err = filepath.Glob(dir); err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
			}
		}
		for _, m := range matches {
			if !slices.Contains(dirs, m) {
				dirs = append(dirs, m)
			}
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no directory matches %q", patterns)
	}
	return dirs, nil
}
