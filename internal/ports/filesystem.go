package ports

import "io/fs"

// FileSystem abstracts the directory operations the watch loop performs.
type FileSystem interface {
	// ReadDir lists the immediate entries of path, sorted by name.
	ReadDir(path string) ([]fs.DirEntry, error)

	// WalkDir walks the tree rooted at root in lexical order.
	WalkDir(root string, fn fs.WalkDirFunc) error

	// RemoveAll removes path and any children. A missing path is not an error.
	RemoveAll(path string) error

	// Exists reports whether path exists.
	Exists(path string) (bool, error)
}
