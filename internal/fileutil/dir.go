package fileutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates path and any missing parents with the given mode.
// Returns nil if the directory already exists; the mode of an existing
// directory is left untouched.
func EnsureDir(path string, mode os.FileMode) error {
	if err := os.MkdirAll(path, mode); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// ProbeWritable verifies that dir accepts new files by creating and removing
// a throwaway file. A stat-based permission check is not enough here: the
// directory may sit on a read-only mount whose permission bits still claim
// write access, and initialization must fail before the engine is invoked
// against such a target.
func ProbeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".writable-*")
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("close probe file: %w", err)
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("remove probe file: %w", err)
	}
	return nil
}

// NonEmptyFile reports whether path exists, is a regular file, and has
// non-zero size. A missing file is not an error; any other stat failure is.
func NonEmptyFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("%s exists but is not a regular file", path)
	}
	return info.Size() > 0, nil
}

// FileExists reports whether path exists as a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

// ContainsPlaintext reports whether any regular file under root contains
// needle. Used by tests to assert that the credential seed is never
// persisted inside the data directory.
func ContainsPlaintext(root string, needle []byte) (bool, error) {
	found := false
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || found || !d.Type().IsRegular() {
			return err
		}
		data, readErr := os.ReadFile(path) //nolint:gosec // G304: root is test-controlled
		if readErr != nil {
			return fmt.Errorf("read %s: %w", path, readErr)
		}
		if len(needle) > 0 && bytes.Contains(data, needle) {
			found = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
