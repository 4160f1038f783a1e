// Package filesystem stores slide images as plain files in one directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/msomdec/rms-content/internal/domain"
)

var _ domain.AssetStore = (*AssetStore)(nil)

// AssetStore implements domain.AssetStore on a local directory. Names map
// directly to files in the directory; subdirectories are never created.
type AssetStore struct {
	dir    string
	logger *slog.Logger
}

// New resolves dir to an absolute path and creates it if needed.
func New(dir string, logger *slog.Logger) (*AssetStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("asset directory required")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve asset directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create asset directory: %w", err)
	}

	return &AssetStore{
		dir:    abs,
		logger: logger.With("system", "assets"),
	}, nil
}

// Dir returns the absolute asset directory.
func (s *AssetStore) Dir() string {
	return s.dir
}

func (s *AssetStore) Path(name string) (string, error) {
	if err := domain.ValidateAssetName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func (s *AssetStore) Exists(ctx context.Context, name string) (bool, error) {
	path, err := s.Path(name)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat asset %s: %w", name, err)
	}
	return info.Mode().IsRegular(), nil
}

// Store writes to a temporary file in the same directory and renames it into
// place, so readers never observe a partially written image.
func (s *AssetStore) Store(ctx context.Context, name string, data []byte) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	s.logger.Debug("asset stored", "name", name, "bytes", len(data))
	return nil
}

func (s *AssetStore) Remove(ctx context.Context, name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove asset %s: %w", name, err)
	}

	s.logger.Debug("asset removed", "name", name)
	return nil
}
