// ABOUTME: File-backed artifact store writing one JSON document per key
// ABOUTME: Keys may contain slashes; they map to nested paths under the root directory

package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists artifacts as <dir>/<key>.json
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the root directory
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid artifact key %q", key)
	}
	return filepath.Join(s.dir, clean+".json"), nil
}

// Load decodes the artifact for key into out. A missing file is a miss, not an error.
func (s *FileStore) Load(key string, out any) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", p, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decoding %s: %w", p, err)
	}
	slog.Debug("Artifact loaded", "key", key, "path", p)
	return true, nil
}

// Save writes the artifact atomically by renaming a temp file into place
func (s *FileStore) Save(key string, value any) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(p), err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".artifact-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("saving %s: %w", p, err)
	}

	slog.Debug("Artifact saved", "key", key, "path", p)
	return nil
}

// Clear removes the artifact for key and any directories left empty by it
func (s *FileStore) Clear(key string) {
	p, err := s.path(key)
	if err != nil {
		slog.Warn("Cannot clear artifact", "key", key, "error", err)
		return
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Cannot clear artifact", "key", key, "error", err)
		return
	}

	root := filepath.Clean(s.dir)
	for dir := filepath.Dir(p); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
		if os.Remove(dir) != nil {
			break
		}
	}
	slog.Debug("Artifact cleared", "key", key, "path", p)
}
