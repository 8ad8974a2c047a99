package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				FolderPath:      "/srv/inbox",
				ChatID:          "42",
				APIToken:        "secret",
				APIURL:          "http://localhost:8081",
				PollInterval:    "5s",
				HTTPTimeout:     "20s",
				ShutdownTimeout: "1m",
				WatchEvents:     &trueVal,
				LockFile:        "/run/foldership.lock",
				NoLock:          &falseVal,
				StatusAddr:      "127.0.0.1:9100",
				LogLevel:        "warn",
				LogFormat:       "json",
				Once:            &trueVal,
			},
			changed: map[string]bool{},
			expected: Config{
				Root:            "/srv/inbox",
				ChatID:          "42",
				Token:           "secret",
				APIURL:          "http://localhost:8081",
				PollInterval:    5 * time.Second,
				HTTPTimeout:     20 * time.Second,
				ShutdownTimeout: time.Minute,
				WatchEvents:     true,
				LockFile:        "/run/foldership.lock",
				StatusAddr:      "127.0.0.1:9100",
				LogLevel:        "warn",
				LogFormat:       "json",
				Once:            true,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				FolderPath: "/config/inbox",
				ChatID:     "1",
				Once:       &trueVal,
			},
			changed: map[string]bool{"folder-path": true, "once": true},
			initial: Config{
				Root: "/flag/inbox",
			},
			expected: Config{
				Root:   "/flag/inbox", // unchanged because flag was set
				ChatID: "1",
			},
		},
		{
			name:       "unset values keep defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{HTTPTimeout: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
folder_path = "/srv/inbox"
chat_id = "-100123"
api_token = "123:abc"
poll_interval = "2s"
watch_events = true
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.FolderPath != "/srv/inbox" {
		t.Errorf("FolderPath = %v, want /srv/inbox", fc.FolderPath)
	}
	if fc.ChatID != "-100123" {
		t.Errorf("ChatID = %v, want -100123", fc.ChatID)
	}
	if fc.APIToken != "123:abc" {
		t.Errorf("APIToken = %v, want 123:abc", fc.APIToken)
	}
	if fc.PollInterval != "2s" {
		t.Errorf("PollInterval = %v, want 2s", fc.PollInterval)
	}
	if fc.WatchEvents == nil || !*fc.WatchEvents {
		t.Errorf("WatchEvents = %v, want true", fc.WatchEvents)
	}
	if fc.Once != nil {
		t.Errorf("Once = %v, want nil", fc.Once)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
folder_path = "/test"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".foldership") {
		t.Errorf("DefaultConfigPath() = %v, should contain .foldership", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
