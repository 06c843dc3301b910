package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherTriggersRebuild(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts"), 0o755))

	rebuilt := make(chan bool, 4)
	w, err := New(dir, 50*time.Millisecond, "", func(ctx context.Context, force bool) error {
		rebuilt <- force
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watch loop a moment to start.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "a.md"), []byte("# a"), 0o644))

	select {
	case force := <-rebuilt:
		assert.False(t, force, "event-driven rebuilds are not forced")
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild not triggered")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()

	rebuilt := make(chan struct{}, 16)
	w, err := New(dir, 150*time.Millisecond, "", func(ctx context.Context, force bool) error {
		rebuilt <- struct{}{}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte{byte('0' + i)}, 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild not triggered")
	}
	// The burst collapses into one rebuild.
	select {
	case <-rebuilt:
		t.Fatal("burst was not debounced")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherIgnoresHiddenFiles(t *testing.T) {
	dir := t.TempDir()

	rebuilt := make(chan struct{}, 4)
	w, err := New(dir, 50*time.Millisecond, "", func(ctx context.Context, force bool) error {
		rebuilt <- struct{}{}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "editor.md~"), []byte("x"), 0o644))

	select {
	case <-rebuilt:
		t.Fatal("hidden or editor files must not trigger rebuilds")
	case <-time.After(400 * time.Millisecond):
	}
}
