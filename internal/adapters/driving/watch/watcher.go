// Package watch keeps the corpus in sync with directories on disk.
//
// Supported files are ingested when they appear or change and removed from
// the corpus when they are deleted or renamed away.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/core/services"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// DefaultSettle is how long a file must be quiet before it is ingested.
const DefaultSettle = 300 * time.Millisecond

// Operation is what happened to a watched file.
type Operation int

const (
	// FileChanged covers creation and modification.
	FileChanged Operation = iota
	// FileRemoved covers deletion and rename.
	FileRemoved
)

// Event reports a corpus change made by the watcher.
type Event struct {
	Path     string
	Op       Operation
	Document *domain.Document
	Err      error
}

// Watcher ingests files from watched directories.
type Watcher struct {
	ingest    driving.IngestService
	documents driving.DocumentService
	settle    time.Duration

	mu     sync.Mutex
	byPath map[string]string // path -> document id
}

// New creates a watcher.
func New(ingest driving.IngestService, documents driving.DocumentService) *Watcher {
	return &Watcher{
		ingest:    ingest,
		documents: documents,
		settle:    DefaultSettle,
		byPath:    make(map[string]string),
	}
}

// Tracked returns the document id for a path, if it was ingested.
func (w *Watcher) Tracked(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id, ok := w.byPath[path]
	return id, ok
}

// Run ingests the supported files under dirs, then watches them until ctx
// is cancelled. Every corpus change is sent to events when it is non-nil.
func (w *Watcher) Run(ctx context.Context, dirs []string, events chan<- Event) error {
	if w.ingest == nil || w.documents == nil {
		return domain.ErrNotImplemented
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range dirs {
		if err := w.addTree(ctx, fsw, dir, events); err != nil {
			return err
		}
	}
	logger.Info("Watching %d directories", len(fsw.WatchList()))

	pending := make(map[string]pendingEvent)
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ctx, fsw, ev.Name, events); err != nil {
						logger.Warn("Watch %s: %v", ev.Name, err)
					}
					continue
				}
			}
			if op, ok := classify(ev); ok && services.IsSupportedFile(ev.Name) && !services.IsHidden(ev.Name) {
				pending[ev.Name] = pendingEvent{op: op, at: time.Now()}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			for path, p := range pending {
				if now.Sub(p.at) < w.settle {
					continue
				}
				delete(pending, path)
				w.emit(ctx, events, w.Handle(ctx, path, p.op))
			}
		}
	}
}

type pendingEvent struct {
	op Operation
	at time.Time
}

// classify maps an fsnotify event to an operation.
func classify(ev fsnotify.Event) (Operation, bool) {
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return FileRemoved, true
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		return FileChanged, true
	}
	return 0, false
}

// Handle applies one file operation to the corpus. A changed file is
// ingested before the document previously read from the same path is
// dropped, so a failed re-read leaves the old version in place.
func (w *Watcher) Handle(ctx context.Context, path string, op Operation) Event {
	event := Event{Path: path, Op: op}
	oldID, tracked := w.Tracked(path)

	if op == FileRemoved {
		if tracked {
			if err := w.forget(ctx, path, oldID); err != nil {
				event.Err = err
				return event
			}
		}
		logger.Info("Removed %s from corpus", path)
		return event
	}

	doc, err := w.ingest.IngestFile(ctx, path, "")
	if err != nil {
		event.Err = err
		return event
	}
	w.mu.Lock()
	w.byPath[path] = doc.ID
	w.mu.Unlock()
	event.Document = doc

	if tracked {
		if _, err := w.documents.Delete(ctx, oldID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Dropping previous version of %s: %v", path, err)
		}
	}
	return event
}

// forget deletes the document ingested from path and stops tracking it.
// A document already deleted elsewhere is not an error.
func (w *Watcher) forget(ctx context.Context, path, id string) error {
	if _, err := w.documents.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	w.mu.Lock()
	delete(w.byPath, path)
	w.mu.Unlock()
	return nil
}

// addTree watches dir and its non-hidden subdirectories and ingests the
// supported files already there.
func (w *Watcher) addTree(ctx context.Context, fsw *fsnotify.Watcher, dir string, events chan<- Event) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		if path != dir && services.IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			return nil
		}
		if services.IsSupportedFile(path) {
			w.emit(ctx, events, w.Handle(ctx, path, FileChanged))
		}
		return nil
	})
}

func (w *Watcher) emit(ctx context.Context, events chan<- Event, ev Event) {
	if ev.Err != nil {
		logger.Warn("Watch %s: %v", ev.Path, ev.Err)
	}
	if events == nil {
		return
	}
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
