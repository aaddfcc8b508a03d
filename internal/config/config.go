// Package config holds the WebDriver endpoint and drain tuning, loaded from
// an optional TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment overrides.
const (
	EnvHost          = "WDCTL_HOST"
	EnvPort          = "WDCTL_PORT"
	EnvSession       = "WDCTL_SESSION"
	EnvDrainStrategy = "WDCTL_DRAIN_STRATEGY"
	EnvExtractor     = "WDCTL_EXTRACTOR"
)

// Config is the effective client configuration.
type Config struct {
	Host        string
	Port        int
	Session     string
	DialTimeout time.Duration
	Extractor   string
	Drain       Drain
}

// Drain tunes the response drainer.
type Drain struct {
	Strategy     string
	PollInterval time.Duration
	Threshold    int
	Timeout      time.Duration
	ReadSize     int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:        "localhost",
		Port:        4444,
		DialTimeout: 5 * time.Second,
		Extractor:   "scan",
		Drain: Drain{
			Strategy:     "quiescence",
			PollInterval: 20 * time.Millisecond,
			Threshold:    5,
			Timeout:      30 * time.Second,
			ReadSize:     16384,
		},
	}
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type fileConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Session     string `toml:"session"`
	DialTimeout string `toml:"dial_timeout"`
	Extractor   string `toml:"extractor"`
	Drain       struct {
		Strategy     string `toml:"strategy"`
		PollInterval string `toml:"poll_interval"`
		Threshold    int    `toml:"threshold"`
		Timeout      string `toml:"timeout"`
		ReadSize     int    `toml:"read_size"`
	} `toml:"drain"`
}

// DefaultPath returns $XDG_CONFIG_HOME/wdctl/config.toml, falling back to
// ~/.config/wdctl/config.toml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "wdctl", "config.toml")
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path means DefaultPath, which may be absent; an
// explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		err := loadFile(path, &cfg)
		switch {
		case err == nil:
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("host") {
		cfg.Host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("port") {
		cfg.Port = raw.Port
	}
	if meta.IsDefined("session") {
		cfg.Session = strings.TrimSpace(raw.Session)
	}
	if meta.IsDefined("extractor") {
		cfg.Extractor = strings.TrimSpace(raw.Extractor)
	}
	if meta.IsDefined("dial_timeout") {
		d, err := parseDuration("dial_timeout", raw.DialTimeout)
		if err != nil {
			return err
		}
		cfg.DialTimeout = d
	}
	if meta.IsDefined("drain", "strategy") {
		cfg.Drain.Strategy = strings.TrimSpace(raw.Drain.Strategy)
	}
	if meta.IsDefined("drain", "poll_interval") {
		d, err := parseDuration("drain.poll_interval", raw.Drain.PollInterval)
		if err != nil {
			return err
		}
		cfg.Drain.PollInterval = d
	}
	if meta.IsDefined("drain", "threshold") {
		cfg.Drain.Threshold = raw.Drain.Threshold
	}
	if meta.IsDefined("drain", "timeout") {
		d, err := parseDuration("drain.timeout", raw.Drain.Timeout)
		if err != nil {
			return err
		}
		cfg.Drain.Timeout = d
	}
	if meta.IsDefined("drain", "read_size") {
		cfg.Drain.ReadSize = raw.Drain.ReadSize
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvHost)); v != "" {
		cfg.Host = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	if v := strings.TrimSpace(os.Getenv(EnvSession)); v != "" {
		cfg.Session = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDrainStrategy)); v != "" {
		cfg.Drain.Strategy = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExtractor)); v != "" {
		cfg.Extractor = v
	}
	return nil
}

// Validate rejects configurations the transport cannot run with.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Host) == "" {
		return fmt.Errorf("config missing host")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.DialTimeout <= 0 {
		return fmt.Errorf("dial_timeout must be positive")
	}
	switch cfg.Extractor {
	case "scan", "parse":
	default:
		return fmt.Errorf("unknown extractor %q", cfg.Extractor)
	}
	switch cfg.Drain.Strategy {
	case "quiescence", "content-length":
	default:
		return fmt.Errorf("unknown drain strategy %q", cfg.Drain.Strategy)
	}
	if cfg.Drain.PollInterval <= 0 {
		return fmt.Errorf("drain.poll_interval must be positive")
	}
	if cfg.Drain.Threshold <= 0 {
		return fmt.Errorf("drain.threshold must be positive")
	}
	if cfg.Drain.Timeout <= 0 {
		return fmt.Errorf("drain.timeout must be positive")
	}
	if cfg.Drain.ReadSize <= 0 {
		return fmt.Errorf("drain.read_size must be positive")
	}
	return nil
}
