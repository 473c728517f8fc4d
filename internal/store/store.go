// Package store manages the on-disk library of recordings: listing a
// directory of recording files and watching it for changes so a control
// surface can refresh its view.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vedantwpatil/Mouse-Replay/internal/event"
	"github.com/vedantwpatil/Mouse-Replay/internal/storage"
)

// Info describes one recording file. Err is set when the file could not
// be loaded; a corrupted file is reported, not fatal to the listing.
type Info struct {
	Path     string
	Metadata event.Metadata
	Err      error
}

// Store reads a directory of recording files.
type Store struct {
	dir string
}

// New returns a store over dir. The directory does not have to exist
// yet; an absent directory lists as empty.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store reads.
func (s *Store) Dir() string { return s.dir }

// List returns the recordings in the directory, sorted by file name.
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list recordings: %w", err)
	}

	var infos []Info
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		info := Info{Path: path}
		rec, err := storage.Load(path)
		if err != nil {
			info.Err = err
		} else {
			info.Metadata = rec.Metadata
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos, nil
}

// Watch emits a fresh listing whenever the directory changes, until ctx
// is done. The returned channel is closed on exit.
func (s *Store) Watch(ctx context.Context) (<-chan []Info, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch recordings: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch recordings: %w", err)
	}

	out := make(chan []Info, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				infos, err := s.List()
				if err != nil {
					slog.Warn("relisting recordings failed", "err", err)
					continue
				}
				select {
				case out <- infos:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("recordings watcher error", "err", err)
			}
		}
	}()
	return out, nil
}

// DefaultName returns a timestamped file name for a new recording.
func DefaultName(t time.Time) string {
	return "recording-" + t.Format("20060102-150405") + ".json"
}
