package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantwpatil/Mouse-Replay/internal/event"
	"github.com/vedantwpatil/Mouse-Replay/internal/storage"
)

func saveRecording(t *testing.T, dir, name string, events ...event.Event) {
	t.Helper()
	rec := event.New(events, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, storage.Save(rec, filepath.Join(dir, name)))
}

func TestListMissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent"))
	infos, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestListSortedWithCorruptedFlagged(t *testing.T) {
	dir := t.TempDir()
	saveRecording(t, dir, "b.json", event.Move(0, 0, 0))
	saveRecording(t, dir, "a.json", event.Move(0, 0, 0), event.Move(1, 1, 1.5))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{{{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	infos, err := New(dir).List()
	require.NoError(t, err)
	require.Len(t, infos, 3, "only .json files are listed")

	assert.Equal(t, filepath.Join(dir, "a.json"), infos[0].Path)
	assert.NoError(t, infos[0].Err)
	assert.Equal(t, 2, infos[0].Metadata.EventCount)
	assert.Equal(t, 1.5, infos[0].Metadata.Duration)

	assert.Equal(t, filepath.Join(dir, "b.json"), infos[1].Path)
	assert.NoError(t, infos[1].Err)

	assert.Equal(t, filepath.Join(dir, "broken.json"), infos[2].Path)
	assert.Error(t, infos[2].Err)
}

func TestWatchEmitsOnNewRecording(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := s.Watch(ctx)
	require.NoError(t, err)

	saveRecording(t, dir, "fresh.json", event.Move(0, 0, 0))

	select {
	case infos := <-updates:
		require.NotEmpty(t, infos)
		assert.Equal(t, filepath.Join(dir, "fresh.json"), infos[len(infos)-1].Path)
	case <-time.After(3 * time.Second):
		t.Fatal("no update after a recording was added")
	}

	cancel()
	// Channel closes once the watcher winds down.
	for range updates {
	}
}

func TestDefaultName(t *testing.T) {
	name := DefaultName(time.Date(2025, 6, 1, 9, 30, 15, 0, time.UTC))
	assert.Equal(t, "recording-20250601-093015.json", name)
}
