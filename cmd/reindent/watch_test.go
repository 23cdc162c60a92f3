package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/reindent"
)

func TestWatchReindentsChangedFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	ignored := filepath.Join(dir, "notes.txt")
	writeFile(t, path, cleanJS)

	a := &app{
		log:      slog.New(slog.DiscardHandler),
		colors:   newPalette(false),
		registry: reindent.Builtin(),
	}
	opts := fmtOptions{format: reindent.ReportText, maxBlank: -1, jobs: 1}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stdout, stderr bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- a.watch(ctx, &stdout, &stderr, []string{dir}, opts)
	}()

	// Early writes may land before the directory is watched, so keep
	// rewriting until the watcher reindents the file.
	written := false
	require.Eventually(t, func() bool {
		b, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		if written && string(b) == cleanJS {
			return true
		}
		if err := os.WriteFile(ignored, []byte("x {\ny\n}\n"), 0o644); err != nil {
			return false
		}
		written = os.WriteFile(path, []byte(messyJS), 0o644) == nil || written
		return false
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	assert.Contains(t, stdout.String(), "reindented "+path)
	assert.Empty(t, stderr.String())
	assert.Equal(t, "x {\ny\n}\n", readFile(t, ignored))
}
