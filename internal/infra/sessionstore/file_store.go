package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/scapet/scapet-go/internal/domain/session"
	"github.com/scapet/scapet-go/pkg/util"
)

// FileStore keeps the session snapshot as a single JSON document on disk.
// Writes go through a temp file plus rename, so readers never observe a
// partially written snapshot.
type FileStore struct {
	path string
}

type document struct {
	SavedAt  time.Time        `json:"saved_at"`
	Snapshot session.Snapshot `json:"session"`
}

// DefaultPath resolves the per-user snapshot location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "scapet", "session.json"), nil
}

// NewFileStore builds a store rooted at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file is not an error.
func (s *FileStore) Load(_ context.Context) (session.Snapshot, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return session.Snapshot{}, false, nil
		}
		return session.Snapshot{}, false, fmt.Errorf("read session file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return session.Snapshot{}, false, fmt.Errorf("parse session file: %w", err)
	}
	return doc.Snapshot, true, nil
}

// Save atomically replaces the snapshot document. The file is user-only:
// it holds a bearer token.
func (s *FileStore) Save(_ context.Context, snap session.Snapshot) error {
	data, err := json.MarshalIndent(document{SavedAt: util.NowUTC(), Snapshot: snap}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("commit session file: %w", err)
	}
	return nil
}

// Clear removes the snapshot. Clearing an absent snapshot succeeds.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
