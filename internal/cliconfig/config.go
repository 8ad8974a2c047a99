package cliconfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/foldership/internal/adapters/telegram"
)

// Config holds CLI configuration for foldership.
type Config struct {
	Root   string
	ChatID string
	Token  string
	APIURL string

	PollInterval    time.Duration
	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration

	WatchEvents bool
	LockFile    string
	NoLock      bool
	StatusAddr  string

	LogLevel  string
	LogFormat string
	Once      bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		APIURL:          telegram.DefaultAPIURL,
		PollInterval:    time.Second,
		HTTPTimeout:     30 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		LogLevel:        "info",
		LogFormat:       "console",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("folder-path is required")
	}
	c.Root = filepath.Clean(c.Root)

	if c.ChatID == "" {
		return fmt.Errorf("chat-id is required")
	}
	if c.Token == "" {
		return fmt.Errorf("api-token is required")
	}

	if c.APIURL == "" {
		c.APIURL = telegram.DefaultAPIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")

	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}

	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("log-format must be console or json, got %q", c.LogFormat)
	}

	return nil
}

// configSetter applies values while respecting flag precedence.
// A value is only applied if the corresponding flag was not set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses an environment value into dst.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
