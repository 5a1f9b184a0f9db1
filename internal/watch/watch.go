// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package watch re-renders Markdown files when they change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"mdwiki.dev/markdown"
	"mdwiki.dev/markdown/internal/metrics"
)

// HTMLPath returns the output path for the Markdown file at path:
// the same name with the .md extension replaced by .html.
func HTMLPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
}

// IsMarkdown reports whether path names a Markdown file.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// RenderFile renders the Markdown file at path to HTMLPath(path).
func RenderFile(ctx context.Context, path string, opts ...markdown.Option) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read")
	}
	html, err := markdown.RenderContext(ctx, string(data), opts...)
	if err != nil {
		return errors.Wrapf(err, "render %s", path)
	}
	if err := os.WriteFile(HTMLPath(path), []byte(html), 0o644); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

// A Watcher renders every Markdown file in a directory
// each time it is written.
type Watcher struct {
	Dir      string
	Options  []markdown.Option
	Debounce time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Recorder

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup
	done    chan struct{}
}

// Start renders the Markdown files already in w.Dir and begins
// watching it. Events are handled until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if w.Logger == nil {
		w.Logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	if err := fw.Add(w.Dir); err != nil {
		fw.Close()
		return errors.Wrapf(err, "watch %s", w.Dir)
	}
	w.watcher = fw
	w.pending = make(map[string]*time.Timer)
	w.done = make(chan struct{})

	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		fw.Close()
		return errors.Wrapf(err, "read %s", w.Dir)
	}
	for _, e := range entries {
		if !e.IsDir() && IsMarkdown(e.Name()) {
			w.render(ctx, filepath.Join(w.Dir, e.Name()))
		}
	}

	w.Logger.Info("Watching for changes", "dir", w.Dir, "debounce", w.Debounce)
	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop ends watching and waits for pending renders to finish.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	w.mu.Lock()
	for _, t := range w.pending {
		t.Stop()
	}
	w.mu.Unlock()
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !IsMarkdown(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.schedule(ctx, ev.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Logger.Error("Watcher error", "error", err)
		}
	}
}

// schedule renders path after the debounce interval,
// restarting the interval if path is already pending.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.Debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.render(ctx, path)
	})
}

func (w *Watcher) render(ctx context.Context, path string) {
	start := time.Now()
	err := RenderFile(ctx, path, w.Options...)
	info, _ := os.Stat(path)
	size := 0
	if info != nil {
		size = int(info.Size())
	}
	w.Metrics.ObserveRender("watch", size, time.Since(start), err)
	if err != nil {
		w.Logger.Error("Render failed", "file", path, "error", err)
		return
	}
	w.Logger.Info("Rendered", "file", path, "output", HTMLPath(path), "duration", time.Since(start))
}
