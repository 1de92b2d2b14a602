package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartWatcherRequiresRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{}, nil)
	assert.Error(t, err)
}

func TestStartWatcherInitialScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "existing.pdf", "%PDF")
	writeFile(t, dir, "notes.exe", "binary")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}, InitialScan: true}, nil)
	require.NoError(t, err)

	select {
	case path := <-evCh:
		assert.Equal(t, "existing.pdf", filepath.Base(path))
	case <-time.After(2 * time.Second):
		t.Fatal("expected initial-scan event")
	}

	select {
	case path := <-evCh:
		t.Fatalf("unexpected extra event: %s", path)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStartWatcherEmitsDroppedFile(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: 50 * time.Millisecond,
	}, nil)
	require.NoError(t, err)

	path := filepath.Join(dir, "dropped.txt")
	require.NoError(t, os.WriteFile(path, []byte("new case file"), 0o644))

	select {
	case got := <-evCh:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("expected watch event for dropped file")
	}
}

func TestStartWatcherClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	evCh, errCh, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}}, nil)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-evCh:
		assert.False(t, ok, "event channel closes on cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("event channel did not close")
	}
	select {
	case _, ok := <-errCh:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("error channel did not close")
	}
}
