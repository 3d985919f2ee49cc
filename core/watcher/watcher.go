package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"SongFormat/core/chart"
	"SongFormat/logger"
	"SongFormat/model"
	"SongFormat/storage"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long the watcher waits for writes to settle.
const DefaultDelay = 300 * time.Millisecond

// Change reports the outcome of re-reading one song after an edit.
type Change struct {
	Slug    string
	Song    *model.SongData // nil when Err is set or the song was removed
	Removed bool            // song.json is gone and the catalog row was dropped
	Err     error
}

// Watcher re-indexes songs whose song.json changes inside a local store.
type Watcher struct {
	svc      *chart.Service
	local    *storage.LocalStore
	delay    time.Duration
	onChange func(Change)

	mu      sync.Mutex
	pending map[string]struct{}
}

// New creates a watcher. onChange may be nil; it is called from the
// debounce goroutine.
func New(svc *chart.Service, local *storage.LocalStore, delay time.Duration, onChange func(Change)) *Watcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Watcher{
		svc:      svc,
		local:    local,
		delay:    delay,
		onChange: onChange,
		pending:  make(map[string]struct{}),
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, w.local.Root()); err != nil {
		return err
	}
	logger.Info("watching charts", logger.String("dir", w.local.Root()), logger.Duration("delay", w.delay))

	debounced := debounce.New(w.delay)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.handle(ctx, fw, event) {
				debounced(func() { w.flush(ctx) })
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", logger.ErrorField(err))
		}
	}
}

// handle processes one event and reports whether a song is now pending.
func (w *Watcher) handle(ctx context.Context, fw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addTree(fw, event.Name); err != nil {
				logger.Warn("watch new directory failed", logger.String("dir", event.Name), logger.ErrorField(err))
			}
			// files written before the watch was added
			return w.queueTree(event.Name)
		}
	}

	rel, ok := w.local.Rel(event.Name)
	if !ok {
		return false
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.svc.Invalidate(ctx, rel)
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return w.queueRemoved(rel)
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return w.queue(rel)
}

// queueRemoved queues the slug of a removed song.json or song directory.
// flush tells the two outcomes apart by reloading.
func (w *Watcher) queueRemoved(rel string) bool {
	if !strings.Contains(rel, "/") && !strings.HasPrefix(rel, ".") {
		w.mu.Lock()
		w.pending[rel] = struct{}{}
		w.mu.Unlock()
		return true
	}
	return w.queue(rel)
}

func (w *Watcher) queue(rel string) bool {
	slug := chart.SlugOf(rel)
	if slug == "" || rel != chart.SongPath(slug) {
		return false
	}
	w.mu.Lock()
	w.pending[slug] = struct{}{}
	w.mu.Unlock()
	return true
}

func (w *Watcher) queueTree(dir string) bool {
	queued := false
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if rel, ok := w.local.Rel(p); ok && w.queue(rel) {
			queued = true
		}
		return nil
	})
	return queued
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	slugs := make([]string, 0, len(w.pending))
	for slug := range w.pending {
		slugs = append(slugs, slug)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()
	sort.Strings(slugs)

	for _, slug := range slugs {
		if ctx.Err() != nil {
			return
		}
		song, err := w.svc.ReindexSong(ctx, slug)
		change := Change{Slug: slug, Song: song, Err: err}
		switch {
		case errors.Is(err, chart.ErrNotFound):
			deleted, uerr := w.svc.Unindex(ctx, slug)
			if uerr != nil {
				logger.Error("unindex song failed", logger.String("slug", slug), logger.ErrorField(uerr))
				change.Err = uerr
				break
			}
			logger.Info("song removed", logger.String("slug", slug), logger.Bool("catalogRow", deleted))
			change = Change{Slug: slug, Removed: true}
		case err != nil:
			logger.Error("reload song failed", logger.String("slug", slug), logger.ErrorField(err))
		default:
			logger.Info("song reloaded", logger.String("slug", slug))
		}
		if w.onChange != nil {
			w.onChange(change)
		}
	}
}

// fsnotify watches are not recursive.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
