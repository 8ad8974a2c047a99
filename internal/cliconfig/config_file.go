package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with string durations for TOML.
type FileConfig struct {
	FolderPath      string `toml:"folder_path"`
	ChatID          string `toml:"chat_id"`
	APIToken        string `toml:"api_token"`
	APIURL          string `toml:"api_url"`
	PollInterval    string `toml:"poll_interval"`
	HTTPTimeout     string `toml:"http_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	WatchEvents     *bool  `toml:"watch_events"`
	LockFile        string `toml:"lock_file"`
	NoLock          *bool  `toml:"no_lock"`
	StatusAddr      string `toml:"status_addr"`
	LogLevel        string `toml:"log_level"`
	LogFormat       string `toml:"log_format"`
	Once            *bool  `toml:"once"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.foldership/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".foldership", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies file values to cfg, skipping explicitly set flags.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("folder-path", fc.FolderPath, &cfg.Root)
	s.setString("chat-id", fc.ChatID, &cfg.ChatID)
	s.setString("api-token", fc.APIToken, &cfg.Token)
	s.setString("api-url", fc.APIURL, &cfg.APIURL)
	s.setString("lock-file", fc.LockFile, &cfg.LockFile)
	s.setString("status-addr", fc.StatusAddr, &cfg.StatusAddr)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBool("watch-events", fc.WatchEvents, &cfg.WatchEvents)
	s.setBool("no-lock", fc.NoLock, &cfg.NoLock)
	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
