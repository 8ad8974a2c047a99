package domain

import "errors"

// Domain errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("foldership: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("foldership: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("foldership: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("foldership: invalid configuration")

	// ErrLocked is returned when another instance already watches the same root.
	ErrLocked = errors.New("foldership: root is locked by another instance")

	// ErrRootUnavailable is returned when the watched root cannot be read.
	ErrRootUnavailable = errors.New("foldership: root unavailable")

	// ErrNoTarget is returned by deliverers asked to send an empty path.
	ErrNoTarget = errors.New("foldership: no file to deliver")

	// ErrInvalidSubUnit is returned for entry names that would escape the root.
	ErrInvalidSubUnit = errors.New("foldership: invalid sub-unit name")
)
