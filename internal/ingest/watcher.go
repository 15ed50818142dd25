// Package ingest watches scan drop folders and feeds new files into the
// capture queue. Drop folders are laid out one subdirectory per company,
// named by the company's id.
package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/xxch4nnn/WorkTrack-sub001/constants"
)

// WatchConfig controls drop-folder discovery.
type WatchConfig struct {
	Roots       []string // directories to watch, recursively
	AllowedExts map[string]struct{}
	InitialScan bool          // walk roots and emit files already present
	Debounce    time.Duration // coalesce rapid write/rename bursts
	Logger      *slog.Logger
}

// StartWatcher begins watching the configured roots and returns a channel
// of file paths plus a channel of watcher errors. Both close when ctx is
// cancelled. Scanners often write a file in several bursts; the debounce
// window holds a path until writes settle so OCR never reads a half-written
// scan.
func StartWatcher(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error) {
	if len(cfg.Roots) == 0 {
		return nil, nil, errors.New("no watch roots configured")
	}
	if cfg.AllowedExts == nil {
		cfg.AllowedExts = constants.AllowedExtensions
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	addRoot := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return w.Add(path)
			}
			if cfg.InitialScan && allowedExt(path, cfg.AllowedExts) {
				select {
				case evCh <- path:
				default:
					logger.Warn("event buffer full, dropping initial-scan file", "path", path)
				}
			}
			return nil
		})
	}
	for _, root := range cfg.Roots {
		if err := addRoot(root); err != nil {
			_ = w.Close()
			return nil, nil, err
		}
	}

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer w.Close()

		// The debounce timer fires flush on its own goroutine while the
		// event loop keeps adding paths; mu covers pending, timer and the
		// closed flag.
		var (
			mu      sync.Mutex
			timer   *time.Timer
			closed  bool
			pending = map[string]struct{}{}
		)
		// A timer that fires after the loop exits must not touch evCh.
		defer func() {
			mu.Lock()
			closed = true
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
		}()

		flush := func() {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			for p := range pending {
				select {
				case evCh <- p:
				default:
					logger.Warn("event buffer full, dropping file event", "path", p)
				}
				delete(pending, p)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				// New company folders appear at runtime; watch them too.
				if e.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
						if err := w.Add(e.Name); err != nil {
							logger.Warn("cannot watch new directory", "path", e.Name, "error", err)
						}
						continue
					}
				}
				if allowedExt(e.Name, cfg.AllowedExts) && e.Op.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename) {
					mu.Lock()
					pending[e.Name] = struct{}{}
					if cfg.Debounce > 0 {
						if timer != nil {
							timer.Stop()
						}
						timer = time.AfterFunc(cfg.Debounce, flush)
						mu.Unlock()
					} else {
						mu.Unlock()
						flush()
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	logger.Info("drop-folder watcher started", "roots", strings.Join(cfg.Roots, ","))
	return evCh, errCh, nil
}

func allowedExt(path string, exts map[string]struct{}) bool {
	_, ok := exts[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

// CompanyFromPath resolves which company a dropped file belongs to from
// its location: the first directory segment under the watch root must be
// the company id.
func CompanyFromPath(root, path string) (uuid.UUID, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return uuid.Nil, err
	}
	seg := strings.Split(filepath.ToSlash(rel), "/")
	if len(seg) < 2 || seg[0] == ".." {
		return uuid.Nil, errors.New("file is not inside a company folder")
	}
	id, err := uuid.Parse(seg[0])
	if err != nil {
		return uuid.Nil, errors.New("company folder name is not a valid id")
	}
	return id, nil
}
