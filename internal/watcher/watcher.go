// Package watcher watches the game's log directory and ships settled board
// files to the archive server.
package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pwrequiem/go-board-archive/internal/uploader"
)

// Uploader ships one file to the archive.
type Uploader interface {
	Upload(path string) (accepted bool, res uploader.Result, err error)
}

// Watcher uploads board files from a directory once they have been quiet
// for the configured period, then removes them on confirmed acceptance.
type Watcher struct {
	cfg    Config
	client Uploader
	logger *log.Logger
	now    func() time.Time
}

// New returns a Watcher over cfg uploading through client.
func New(cfg Config, client Uploader, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{cfg: cfg, client: client, logger: logger, now: time.Now}
}

// Run watches until ctx is canceled. Filesystem events trigger a scan, and a
// ticker rescans anyway: quiet-period expiry generates no event of its own.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	w.logger.Printf("watching %s (pattern %s)", w.cfg.Dir, w.cfg.Pattern)

	interval := time.Duration(w.cfg.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.Scan()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Scan()
		case _, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.Scan()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("watch error: %v", err)
		}
	}
}

// Scan uploads every matching file that has settled. Upload failures are
// logged and retried on the next scan.
func (w *Watcher) Scan() {
	matches, err := filepath.Glob(filepath.Join(w.cfg.Dir, w.cfg.Pattern))
	if err != nil {
		w.logger.Printf("scan error: %v", err)
		return
	}

	quiet := time.Duration(w.cfg.QuietSeconds) * time.Second
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if w.now().Sub(info.ModTime()) < quiet {
			continue // still being written by the game client
		}

		accepted, res, err := w.client.Upload(path)
		if err != nil {
			w.logger.Printf("upload %s: %v", filepath.Base(path), err)
			continue
		}
		if !accepted {
			w.logger.Printf("rejected %s: %s", filepath.Base(path), res.Message)
			continue
		}
		w.logger.Printf("uploaded %s: %d new events", filepath.Base(path), res.NewEvents)

		if w.cfg.DeleteUploaded {
			if err := os.Remove(path); err != nil {
				w.logger.Printf("remove %s: %v", filepath.Base(path), err)
			}
		}
	}
}
