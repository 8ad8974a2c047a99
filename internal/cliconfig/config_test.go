package cliconfig

import (
	"testing"
	"time"

	"github.com/bft-labs/foldership/internal/adapters/telegram"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want 1s", cfg.PollInterval)
	}
	if cfg.APIURL != telegram.DefaultAPIURL {
		t.Errorf("APIURL = %v, want %v", cfg.APIURL, telegram.DefaultAPIURL)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.LogFormat != "console" {
		t.Errorf("LogFormat = %v, want console", cfg.LogFormat)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Root = "/srv/inbox"
		cfg.ChatID = "42"
		cfg.Token = "123:abc"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid minimal config", mutate: func(*Config) {}},
		{name: "missing folder path", mutate: func(c *Config) { c.Root = "" }, wantErr: true},
		{name: "missing chat id", mutate: func(c *Config) { c.ChatID = "" }, wantErr: true},
		{name: "missing token", mutate: func(c *Config) { c.Token = "" }, wantErr: true},
		{name: "invalid poll interval", mutate: func(c *Config) { c.PollInterval = -1 }, wantErr: true},
		{name: "zero http timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "json log format", mutate: func(c *Config) { c.LogFormat = "json" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	c := Config{
		Root:         "/srv/inbox/",
		ChatID:       "42",
		Token:        "123:abc",
		APIURL:       "http://localhost:8081/",
		PollInterval: time.Second,
		HTTPTimeout:  time.Second,
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c.Root != "/srv/inbox" {
		t.Errorf("Root = %v, want /srv/inbox", c.Root)
	}
	if c.APIURL != "http://localhost:8081" {
		t.Errorf("APIURL = %v, want http://localhost:8081", c.APIURL)
	}

	c.APIURL = ""
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c.APIURL != telegram.DefaultAPIURL {
		t.Errorf("APIURL = %v, want %v", c.APIURL, telegram.DefaultAPIURL)
	}
}
