package foldership

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bft-labs/foldership/internal/app"
	"github.com/bft-labs/foldership/internal/domain"
)

// Config configures a Foldership instance.
type Config struct {
	// Root is the watched directory. Required.
	Root string

	// ChatID is the Telegram chat that receives delivered files. Required.
	ChatID string

	// Token is the bot token. Required unless WithDeliverer is used.
	Token string

	// APIURL overrides the Bot API base URL.
	APIURL string

	// PollInterval is the sleep between cycles. Default: 1s.
	PollInterval time.Duration

	// HTTPTimeout bounds a single delivery request. Default: 30s.
	HTTPTimeout time.Duration

	// ShutdownTimeout bounds Stop. Default: 30s.
	ShutdownTimeout time.Duration

	// WatchEvents wakes the loop early on file system events under Root.
	WatchEvents bool

	// LockFile guards Root against a second instance. Default: a file in
	// the system temp directory derived from Root.
	LockFile string

	// DisableLock skips the single-instance lock.
	DisableLock bool

	// StatusAddr enables the HTTP status server when set, e.g. "127.0.0.1:8089".
	StatusAddr string

	// Once runs a single cycle and stops.
	Once bool
}

// SetDefaults fills zero fields with defaults.
func (c *Config) SetDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = app.ShutdownTimeout
	}
	if c.LockFile == "" && c.Root != "" {
		c.LockFile = defaultLockPath(c.Root)
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: root is required", domain.ErrInvalidConfig)
	}
	if c.ChatID == "" {
		return fmt.Errorf("%w: chat id is required", domain.ErrInvalidConfig)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", domain.ErrInvalidConfig)
	}
	if !c.DisableLock && c.LockFile != "" && within(c.Root, c.LockFile) {
		return fmt.Errorf("%w: lock file %s must not be inside root", domain.ErrInvalidConfig, c.LockFile)
	}
	return nil
}

func within(root, path string) bool {
	r, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	p, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(r, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
