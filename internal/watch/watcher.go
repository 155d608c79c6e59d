// Package watch re-runs a scan whenever the watched document changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ScanFunc performs one full scan.
type ScanFunc func(ctx context.Context) error

// Config controls how change events map to scans.
type Config struct {
	// Path is the document to watch.
	Path string
	// Debounce coalesces a burst of changes into one scan once the document
	// has been quiet this long. Zero scans once per change event.
	Debounce time.Duration
}

// Watcher runs a scan at startup and after each change to Config.Path.
// Scans always run on the Run goroutine, one after another.
type Watcher struct {
	cfg    Config
	scan   ScanFunc
	logger *slog.Logger
}

func New(cfg Config, scan ScanFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{cfg: cfg, scan: scan, logger: logger}
}

// Run blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory so editors that replace the file are still seen.
	abs, err := filepath.Abs(w.cfg.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.cfg.Path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w.runScan(ctx, "startup")
	return w.loop(ctx, abs, fsw.Events, fsw.Errors)
}

func (w *Watcher) loop(ctx context.Context, path string, events <-chan fsnotify.Event, errs <-chan error) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !relevant(ev, path) {
				continue
			}
			if w.cfg.Debounce <= 0 {
				w.runScan(ctx, ev.Op.String())
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.cfg.Debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			w.runScan(ctx, "debounced")
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) runScan(ctx context.Context, trigger string) {
	if err := w.scan(ctx); err != nil {
		w.logger.Error("scan failed", "trigger", trigger, "err", err)
	}
}

func relevant(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
