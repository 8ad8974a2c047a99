package app

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/bft-labs/foldership/internal/domain"
	"github.com/bft-labs/foldership/internal/ports"
)

// Locator finds the first file beneath a directory tree.
type Locator struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewLocator creates a Locator over fsys.
func NewLocator(fsys ports.FileSystem, logger ports.Logger) *Locator {
	return &Locator{fs: fsys, logger: logger}
}

// FindFile walks root in lexical order and returns the path of the first
// regular file. Symlinks, pipes, sockets and devices are skipped. found is false when the tree holds no files.
// Errors reading root itself wrap domain.ErrRootUnavailable; unreadable
// nested directories are skipped.
func (l *Locator) FindFile(root string) (path string, found bool, err error) {
	walkErr := l.fs.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fmt.Errorf("%w: %w", domain.ErrRootUnavailable, err)
			}
			l.logger.Debug("skipping unreadable entry",
				ports.String("path", p),
				ports.Err(err),
			)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			l.logger.Debug("skipping non-regular file",
				ports.String("path", p),
				ports.String("mode", d.Type().String()),
			)
			return nil
		}
		path = p
		found = true
		return fs.SkipAll
	})
	if walkErr != nil && !errors.Is(walkErr, fs.SkipAll) {
		return "", false, walkErr
	}
	return path, found, nil
}
