package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// snapshot is the on-disk form of a State.
type snapshot struct {
	Approved   []string  `json:"approved"`
	Exonerated []string  `json:"exonerated"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FileStore persists a State as a JSON file with approved and exonerated
// code lists.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a store backed by path.
// If path is empty, defaults to $XDG_DATA_HOME/materias/progress.json, or
// ~/.local/share/materias/progress.json when XDG_DATA_HOME is unset.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "progress.json")
	}
	return &FileStore{path: path}, nil
}

func defaultDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "materias"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "materias"), nil
}

// Load reads the stored state. A missing file yields an empty state.
func (s *FileStore) Load(ctx context.Context) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, fmt.Errorf("read progress file: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse progress: %w", err)
	}
	return FromSets(snap.Approved, snap.Exonerated), nil
}

// Save writes st, creating the parent directory if needed.
func (s *FileStore) Save(ctx context.Context, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		Approved:   st.Approved(),
		Exonerated: st.Exonerated(),
		UpdatedAt:  time.Now().UTC(),
	}
	if snap.Approved == nil {
		snap.Approved = []string{}
	}
	if snap.Exonerated == nil {
		snap.Exonerated = []string{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write progress file: %w", err)
	}
	return nil
}

// Delete removes the stored state. Deleting a missing file is not an error.
func (s *FileStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove progress file: %w", err)
	}
	return nil
}

// Path returns the progress file path.
func (s *FileStore) Path() string {
	return s.path
}
