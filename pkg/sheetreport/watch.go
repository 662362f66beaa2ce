package sheetreport

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
)

// Reload retry settings. Spreadsheet editors write workbooks in several steps,
// so a reload right after an event can see a truncated file.
const (
	reloadAttempts = 3
	reloadDelay    = 200 * time.Millisecond
)

// Update is passed to the Watch callback after each (re)load.
type Update struct {
	// Report is the extracted report; nil when Err is set.
	Report *models.Report
	// Changed is false when the grid is identical to the previous load.
	Changed bool
	// Err is the load error, if any.
	Err error
}

// Watch extracts the workbook at path, then re-extracts it whenever the file
// is written or replaced, calling fn after every attempt. Reports come from
// cache. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, opts Options, cache *Cache, fn func(Update)) error {
	log := opts.logger()

	resolved, err := ResolveSource(path, opts.FallbackToDirectory)
	if err != nil {
		return err
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(resolved)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(resolved), err)
	}
	log.Info("watching workbook", slog.String("path", resolved))

	var last uint64
	first := true
	reload := func() {
		var src *Source
		err := retry.Do(
			func() error {
				var err error
				src, err = Load(resolved, opts)
				return err
			},
			retry.Context(ctx),
			retry.Attempts(reloadAttempts),
			retry.Delay(reloadDelay),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			fn(Update{Err: err})
			return
		}

		report, _, err := cache.Extract(src.Grid)
		if err != nil {
			fn(Update{Err: err})
			return
		}
		fp := Fingerprint(src.Grid)
		changed := first || fp != last
		first, last = false, fp

		out := *report
		out.Source = filepath.Base(src.Path)
		out.Sheet = src.Sheet
		fn(Update{Report: &out, Changed: changed})
	}

	reload()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != resolved {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				log.Debug("workbook changed", slog.String("op", ev.Op.String()))
				reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}
