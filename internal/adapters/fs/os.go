// Package fs implements ports.FileSystem on the host file system.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// OS implements ports.FileSystem using the os package.
type OS struct{}

// NewOS returns the host file system adapter.
func NewOS() *OS {
	return &OS{}
}

// ReadDir lists path's entries sorted by file name.
func (OS) ReadDir(path string) ([]iofs.DirEntry, error) {
	return os.ReadDir(path)
}

// WalkDir walks root in lexical order.
func (OS) WalkDir(root string, fn iofs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

// RemoveAll removes path recursively.
func (OS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Exists reports whether path exists. Symlinks are not followed.
func (OS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
