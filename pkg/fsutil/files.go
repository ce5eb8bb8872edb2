// Package fsutil provides utility functions and constants for file system operations.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates path and any missing parents with DirModeDefault. It is a no-op
// when the directory already exists.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of filePath.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// CreateFilePerm creates a new file with the specified permissions.
func CreateFilePerm(name string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}

// OpenTruncate opens name for writing only, creating it with FileModeDefault if needed
// and truncating any previous content.
func OpenTruncate(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileModeDefault)
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place,
// so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := EnsureFileDir(path); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	var renamed bool
	defer func() {
		if !renamed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}
	renamed = true

	return nil
}
