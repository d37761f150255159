package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore writes each run to <dir>/run_<id>.json. It is the default
// collaborator; the JSON encoding round-trips every canonical field.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(runID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("run_%s.json", runID))
}

func (s *FileStore) SaveRun(_ context.Context, run *Run) error {
	file, err := os.OpenFile(s.path(run.RunID), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("encoding run %s: %w", run.RunID, err)
	}
	return nil
}

func (s *FileStore) LoadRun(_ context.Context, runID string) (*Run, error) {
	file, err := os.Open(s.path(runID))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var run Run
	if err := json.NewDecoder(file).Decode(&run); err != nil {
		return nil, fmt.Errorf("decoding run %s: %w", runID, err)
	}
	return &run, nil
}
