package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pgforge/pgentry/internal/sentinel"
)

// ErrEmptySrc is returned when a source path is empty.
const ErrEmptySrc = sentinel.Error("source path must not be empty")

// ErrEmptyDst is returned when a destination path is empty.
const ErrEmptyDst = sentinel.Error("destination path must not be empty")

// CopyFile copies src over dst, truncating any previous copy. The destination
// is created with the given mode via os.OpenFile so there is no window where
// the file carries broader permissions than requested; when the file already
// exists its previous mode is kept, matching configuration-refresh semantics
// where the server may have tightened permissions on its own copy.
func CopyFile(src, dst string, mode os.FileMode) (retErr error) {
	if src == "" {
		return ErrEmptySrc
	}
	if dst == "" {
		return ErrEmptyDst
	}

	srcFile, err := os.Open(src) //nolint:gosec // G304: paths are from controlled sources
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() {
		if closeErr := srcFile.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close source: %w", closeErr)
		}
	}()

	dstFile, err := os.OpenFile( //nolint:gosec // G304: paths are from controlled sources
		dst,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		mode,
	)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("copy: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}
	return nil
}

// CopyIntoDir copies src into dir, keeping the source's base name.
// Returns the destination path it wrote to.
func CopyIntoDir(src, dir string, mode os.FileMode) (string, error) {
	if src == "" {
		return "", ErrEmptySrc
	}
	if dir == "" {
		return "", ErrEmptyDst
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if err := CopyFile(src, dst, mode); err != nil {
		return "", err
	}
	return dst, nil
}
