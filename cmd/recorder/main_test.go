package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantwpatil/Mouse-Replay/internal/event"
	"github.com/vedantwpatil/Mouse-Replay/internal/storage"
)

func TestReplayAcceptsFlagsAfterFile(t *testing.T) {
	// Flags trailing the positional file must parse; the missing file
	// then fails at load (1), not at argument parsing (2).
	missing := filepath.Join(t.TempDir(), "missing.json")

	assert.Equal(t, 1, cmdReplay([]string{missing, "-s", "2", "-d", "0"}))
	assert.Equal(t, 1, cmdReplay([]string{"-s", "2", missing, "-d", "0"}))
}

func TestReplayUsageErrors(t *testing.T) {
	assert.Equal(t, 2, cmdReplay(nil))
	assert.Equal(t, 2, cmdReplay([]string{"a.json", "b.json"}))
}

func TestInfoPrintsRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.json")
	rec := event.New([]event.Event{
		event.Move(1, 2, 0),
		event.Click(1, 2, event.ButtonLeft, true, 0.5),
	}, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, storage.Save(rec, path))

	assert.Equal(t, 0, cmdInfo([]string{path}))
}

func TestRunUnknownCommand(t *testing.T) {
	assert.Equal(t, 2, run([]string{"bogus"}))
	assert.Equal(t, 0, run([]string{"help"}))
}
