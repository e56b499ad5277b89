package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"storefront-gateway/pkg/logger"
)

// FileStorage keeps each record as one JSON file under a profile
// directory. This is the default backend and mirrors per-profile browser
// storage.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStorage) Load(name string, into interface{}) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read record %s: %w", name, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to decode record %s: %w", name, err)
	}
	return nil
}

func (s *FileStorage) Save(name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", name, err)
	}

	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write record %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("failed to replace record %s: %w", name, err)
	}

	logger.Debug("Record saved", map[string]interface{}{
		"record": name,
		"bytes":  len(data),
	})
	return nil
}

func (s *FileStorage) Delete(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete record %s: %w", name, err)
	}
	return nil
}
