// Package storage converts recordings to and from their on-disk JSON
// representation. Saves are atomic (write to a temp file, then rename)
// so a crash never leaves a truncated document under the target name.
// Loads validate against an embedded JSON Schema plus the timestamp
// ordering invariant before a Recording is handed out.
package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vedantwpatil/Mouse-Replay/internal/event"
)

//go:embed recording.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("recording.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// Save writes the recording to path atomically, creating parent
// directories as needed.
func Save(rec *event.Recording, path string) error {
	if rec == nil {
		return errors.New("save recording: nil recording")
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create recording directory: %w", err)
	}

	// Temp file in the target directory so the rename stays on one
	// filesystem.
	tmp, err := os.CreateTemp(dir, ".recording-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp recording: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write recording: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write recording: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write recording: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write recording: %w", err)
	}
	return nil
}

// Load parses and validates the recording document at path. Malformed
// documents, unknown event types and non-monotonic timestamps come back
// as a *event.ValidationError.
func Load(path string) (*event.Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &event.ValidationError{Reason: fmt.Sprintf("%s: not valid JSON: %v", path, err)}
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile recording schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &event.ValidationError{Reason: fmt.Sprintf("%s: %v", path, err)}
	}

	var rec event.Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		var verr *event.ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, &event.ValidationError{Reason: fmt.Sprintf("%s: %v", path, err)}
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}
