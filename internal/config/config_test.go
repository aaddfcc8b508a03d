package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// isolate points the default path at an empty directory and clears env overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{EnvHost, EnvPort, EnvSession, EnvDrainStrategy, EnvExtractor} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(Default()) = %v", err)
	}
	if cfg.Addr() != "localhost:4444" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() of missing explicit file succeeded")
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := writeConfig(t, `
host = "selenium.local"
port = 4445
session = "abc123"
dial_timeout = "2s"
extractor = "parse"

[drain]
strategy = "content-length"
poll_interval = "50ms"
threshold = 8
timeout = "1m"
read_size = 4096
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Host != "selenium.local" || cfg.Port != 4445 || cfg.Session != "abc123" {
		t.Errorf("endpoint = %s:%d session %q", cfg.Host, cfg.Port, cfg.Session)
	}
	if cfg.DialTimeout != 2*time.Second {
		t.Errorf("DialTimeout = %s", cfg.DialTimeout)
	}
	if cfg.Extractor != "parse" {
		t.Errorf("Extractor = %q", cfg.Extractor)
	}
	want := Drain{
		Strategy:     "content-length",
		PollInterval: 50 * time.Millisecond,
		Threshold:    8,
		Timeout:      time.Minute,
		ReadSize:     4096,
	}
	if cfg.Drain != want {
		t.Errorf("Drain = %+v, want %+v", cfg.Drain, want)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "[drain]\nthreshold = 9\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	want.Drain.Threshold = 9
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_DefaultPath(t *testing.T) {
	isolate(t)

	dir := os.Getenv("XDG_CONFIG_HOME")
	if err := os.MkdirAll(filepath.Join(dir, "wdctl"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wdctl", "config.toml"), []byte("port = 9515\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9515 {
		t.Errorf("Port = %d, want 9515", cfg.Port)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv(EnvHost, "10.0.0.5")
	t.Setenv(EnvPort, "4446")
	t.Setenv(EnvSession, "env-session")
	t.Setenv(EnvDrainStrategy, "content-length")
	t.Setenv(EnvExtractor, "parse")

	path := writeConfig(t, "host = \"file-host\"\nport = 1234\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr() != "10.0.0.5:4446" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.Session != "env-session" || cfg.Drain.Strategy != "content-length" || cfg.Extractor != "parse" {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{"bad duration", "[drain]\ntimeout = \"forever\"\n", nil, "drain.timeout"},
		{"unknown key", "hots = \"x\"\n", nil, "unknown key"},
		{"bad toml", "host = \n", nil, "config load failed"},
		{"bad strategy", "[drain]\nstrategy = \"chunked\"\n", nil, "drain strategy"},
		{"bad port env", "", map[string]string{EnvPort: "http"}, EnvPort},
		{"port out of range", "port = 70000\n", nil, "out of range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tc.content))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.Host = " " }},
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"zero dial timeout", func(c *Config) { c.DialTimeout = 0 }},
		{"unknown extractor", func(c *Config) { c.Extractor = "regex" }},
		{"zero poll", func(c *Config) { c.Drain.PollInterval = 0 }},
		{"zero threshold", func(c *Config) { c.Drain.Threshold = 0 }},
		{"negative timeout", func(c *Config) { c.Drain.Timeout = -time.Second }},
		{"zero read size", func(c *Config) { c.Drain.ReadSize = 0 }},
	}
	for _, tc := range tests {
		cfg := Default()
		tc.mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Errorf("%s: Validate() = nil, want error", tc.name)
		}
	}
}
