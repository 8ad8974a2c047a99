package cliconfig

import "os"

// EnvPrefix prefixes every foldership environment variable.
const EnvPrefix = "FOLDERSHIP_"

// legacyEnv maps unprefixed variable names to their flags. They are applied
// before the prefixed names, which win when both are set.
var legacyEnv = map[string]string{
	"FOLDER_PATH": "folder-path",
	"CHAT_ID":     "chat-id",
	"API_TOKEN":   "api-token",
}

// ApplyEnvConfig applies configuration from environment variables
// (FOLDERSHIP_* plus the legacy API_TOKEN, CHAT_ID and FOLDER_PATH).
// Flags that were set explicitly are left untouched.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString(legacyEnv["FOLDER_PATH"], os.Getenv("FOLDER_PATH"), &cfg.Root)
	s.setString(legacyEnv["CHAT_ID"], os.Getenv("CHAT_ID"), &cfg.ChatID)
	s.setString(legacyEnv["API_TOKEN"], os.Getenv("API_TOKEN"), &cfg.Token)

	s.setString("folder-path", env("FOLDER_PATH"), &cfg.Root)
	s.setString("chat-id", env("CHAT_ID"), &cfg.ChatID)
	s.setString("api-token", env("API_TOKEN"), &cfg.Token)
	s.setString("api-url", env("API_URL"), &cfg.APIURL)
	s.setString("lock-file", env("LOCK_FILE"), &cfg.LockFile)
	s.setString("status-addr", env("STATUS_ADDR"), &cfg.StatusAddr)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", env("LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setDuration("poll", env("POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", env("HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", env("SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	if err := s.setBoolFromString("watch-events", env("WATCH_EVENTS"), &cfg.WatchEvents); err != nil {
		return err
	}
	if err := s.setBoolFromString("no-lock", env("NO_LOCK"), &cfg.NoLock); err != nil {
		return err
	}
	return s.setBoolFromString("once", env("ONCE"), &cfg.Once)
}

func env(name string) string {
	return os.Getenv(EnvPrefix + name)
}
