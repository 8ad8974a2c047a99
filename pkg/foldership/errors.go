package foldership

import "github.com/bft-labs/foldership/internal/domain"

// Errors returned by the public API. Check with errors.Is.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrLocked          = domain.ErrLocked
	ErrNoTarget        = domain.ErrNoTarget
)

// Caption renders the HTML caption attached to a delivered file.
func Caption(path string) string {
	return domain.Caption(path)
}
