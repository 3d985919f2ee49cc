// Package storage loads and saves encoded chart documents.
//
// Paths are forward-slash separated and relative to the store root, e.g.
// "Metallica_Battery/song.json". Implementations are safe for concurrent use.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
)

// ChartStore is the load/save collaborator of the chart codec.
type ChartStore interface {
	// Load returns the document at path. A missing document yields an error
	// wrapping os.ErrNotExist.
	Load(ctx context.Context, path string) ([]byte, error)
	// Save writes data at path, replacing any previous document.
	Save(ctx context.Context, path string, data []byte) error
	// Delete removes the document at path. Deleting a missing document is not an error.
	Delete(ctx context.Context, path string) error
	// List returns the paths under prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// ErrInvalidPath is returned for paths that escape the store root.
var ErrInvalidPath = errors.New("invalid document path")

// cleanPath normalizes p and rejects absolute or parent-relative paths.
func cleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return cleaned, nil
}

// IsNotExist reports whether err means a missing document.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// Copy transfers every document under prefix from src to dst.
func Copy(ctx context.Context, dst, src ChartStore, prefix string) (int, error) {
	paths, err := src.List(ctx, prefix)
	if err != nil {
		return 0, err
	}
	for i, p := range paths {
		data, err := src.Load(ctx, p)
		if err != nil {
			return i, err
		}
		if err := dst.Save(ctx, p, data); err != nil {
			return i, err
		}
	}
	return len(paths), nil
}
