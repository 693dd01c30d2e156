package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/fsnotify/fsnotify"
)

// settleDelay absorbs the burst of write events editors emit when saving one file.
const settleDelay = 200 * time.Millisecond

// watch re-plans a file from scratch whenever it is written or recreated. It watches the
// parent directories so editors that replace files on save are still seen.
func (j *planJob) watch(ctx context.Context, files []string, report func(result)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	tracked := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		tracked[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return err
		}
	}
	common.Logger().Info("watching", "files", len(tracked), "dirs", len(dirs))

	pending := make(map[string]bool)
	timer := time.NewTimer(settleDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil || !tracked[abs] {
				continue
			}
			pending[abs] = true
			timer.Reset(settleDelay)

		case <-timer.C:
			for abs := range pending {
				path := relativeTo(abs, files)
				j.loader.Invalidate(path)
				common.Logger().Info("scene changed", "path", path)
				report(j.planFile(path))
			}
			clear(pending)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			common.Logger().Error("watch error", "err", err)
		}
	}
}

// relativeTo returns the argument spelling of abs, which the loader cache is keyed by.
func relativeTo(abs string, files []string) string {
	for _, f := range files {
		if a, err := filepath.Abs(f); err == nil && a == abs {
			return f
		}
	}
	return abs
}
