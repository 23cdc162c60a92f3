package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watch reindents files under args whenever they are written or created,
// until ctx is done.
func (a *app) watch(ctx context.Context, stdout, stderr io.Writer, args []string, opts fmtOptions) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	explicit := make(map[string]bool)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if !info.IsDir() {
			// Editors often replace files, so watch the parent directory.
			explicit[filepath.Clean(arg)] = true
			if err := w.Add(filepath.Dir(arg)); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			if p != arg && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return w.Add(p)
		})
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
	}
	a.log.Info("watching for changes", "paths", args)

	wanted := func(path string) bool {
		if len(explicit) > 0 && explicit[filepath.Clean(path)] {
			return true
		}
		if _, err := a.languageFor(path, ""); err != nil && opts.lang == "" {
			return false
		}
		for _, arg := range args {
			if info, err := os.Stat(arg); err == nil && info.IsDir() && isWithin(arg, path) {
				return true
			}
		}
		return false
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", "err", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if info, err := os.Stat(ev.Name); err != nil || info.IsDir() || !wanted(ev.Name) {
				continue
			}
			a.log.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			res := a.formatFile(ev.Name, opts)
			// Errors and check failures are reported and watching continues.
			_ = a.render(stdout, stderr, []fileResult{res}, opts)
		}
	}
}

// isWithin reports whether path is dir or below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
