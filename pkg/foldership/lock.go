package foldership

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/bft-labs/foldership/internal/domain"
)

// defaultLockPath derives a per-root lock file outside the root. It tries
// the temp dir, then the user cache dir, then the parent of root.
func defaultLockPath(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	sum := sha256.Sum256([]byte(abs))
	name := "foldership-" + hex.EncodeToString(sum[:6]) + ".lock"

	dirs := []string{os.TempDir()}
	if cache, err := os.UserCacheDir(); err == nil {
		dirs = append(dirs, filepath.Join(cache, "foldership"))
	}
	dirs = append(dirs, filepath.Dir(abs))

	for _, dir := range dirs {
		if p := filepath.Join(dir, name); !within(abs, p) {
			return p
		}
	}
	return filepath.Join(dirs[0], name)
}

// acquireLock takes the lock at path without blocking.
func acquireLock(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLocked, path)
	}
	return fl, nil
}
