package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, sampleCatalog)

	var reloads atomic.Int32
	w, err := NewWatcher(path, func(context.Context) error {
		reloads.Add(1)
		return nil
	}, 20*time.Millisecond)
	require.NoError(t, err)
	w.Start()
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog+"\n"), 0o600))

	assert.Eventually(t, func() bool { return reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, sampleCatalog)

	var reloads atomic.Int32
	w, err := NewWatcher(path, func(context.Context) error {
		reloads.Add(1)
		return nil
	}, 150*time.Millisecond)
	require.NoError(t, err)
	w.Start()
	defer func() { _ = w.Stop() }()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))
	}

	require.Eventually(t, func() bool { return reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, sampleCatalog)

	var reloads atomic.Int32
	w, err := NewWatcher(path, func(context.Context) error {
		reloads.Add(1)
		return nil
	}, 10*time.Millisecond)
	require.NoError(t, err)
	w.Start()
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o600))
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, reloads.Load())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), sampleCatalog)
	w, err := NewWatcher(path, func(context.Context) error { return nil }, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettle, w.settle)

	w.Start()
	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "blocks.yaml"), func(context.Context) error { return nil }, 0)
	assert.Error(t, err)
}
