package audio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Asset is a transient media file owned by exactly one pipeline run.
type Asset struct {
	Path   string
	Format string
}

// NewAsset describes the file at path, taking the format from its extension.
func NewAsset(path string) *Asset {
	return &Asset{
		Path:   path,
		Format: strings.TrimPrefix(filepath.Ext(path), "."),
	}
}

// Release deletes the file. Releasing twice, or a nil asset, is a no-op.
func (a *Asset) Release() error {
	if a == nil || a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
