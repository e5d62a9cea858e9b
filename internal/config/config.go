package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "lyricsync"

// neteaseCookieEnv is read when no cookie is configured.
const neteaseCookieEnv = "NETEASE_COOKIE"

type Config struct {
	DefaultFolder   string   `koanf:"default_folder"`    // empty means use cwd
	SnapshotDir     string   `koanf:"snapshot_dir"`      // empty means $XDG_DATA_HOME/lyricsync/snapshots
	LogLevel        string   `koanf:"log_level"`         // debug, info, warn, error
	Providers       []string `koanf:"providers"`         // lyric providers, queried in order
	SeekStepSeconds int      `koanf:"seek_step_seconds"` // transport seek step
	Icons           string   `koanf:"icons"`             // "unicode", "nerd" or "ascii"
	Notifications   bool     `koanf:"notifications"`     // desktop notification when lyrics are downloaded
	MPRIS           *bool    `koanf:"mpris"`             // expose the transport on D-Bus (default: true)

	Netease  NeteaseConfig  `koanf:"netease"`
	Download DownloadConfig `koanf:"download"`
}

// NeteaseConfig holds NetEase Cloud Music settings.
type NeteaseConfig struct {
	Cookie string `koanf:"cookie"` // optional login cookie, e.g. "MUSIC_U=..."
}

// DownloadConfig holds lyric search settings.
type DownloadConfig struct {
	TimeoutSeconds int `koanf:"timeout_seconds"` // per search/fetch (default: 10)
	SearchLimit    int `koanf:"search_limit"`    // results per provider (1-50, default: 20)
}

// Defaults.
const (
	DefaultLogLevel        = "info"
	DefaultSeekStepSeconds = 5
	DefaultTimeoutSeconds  = 10
	DefaultSearchLimit     = 20
	MaxSearchLimit         = 50
)

// DefaultProviders is the provider order used when none is configured.
var DefaultProviders = []string{"netease", "lrclib"}

// Load reads ~/.config/lyricsync/config.toml then ./config.toml.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	cfg.SnapshotDir = expandPath(cfg.SnapshotDir)
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = filepath.Join(xdg.DataHome, appName, "snapshots")
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if cfg.Netease.Cookie == "" {
		cfg.Netease.Cookie = os.Getenv(neteaseCookieEnv)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/lyricsync/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// MPRISEnabled reports whether the transport is exposed over MPRIS.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// ProviderNames returns the configured providers, lower-cased, without
// blanks or duplicates. An empty result falls back to DefaultProviders.
func (c *Config) ProviderNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range c.Providers {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		names = append(names, p)
	}
	if len(names) == 0 {
		return append([]string(nil), DefaultProviders...)
	}
	return names
}

// SeekStep returns the transport seek step.
func (c *Config) SeekStep() time.Duration {
	if c.SeekStepSeconds <= 0 {
		return DefaultSeekStepSeconds * time.Second
	}
	return time.Duration(c.SeekStepSeconds) * time.Second
}

// GetDownloadConfig returns the download configuration with defaults applied.
func (c *Config) GetDownloadConfig() DownloadConfig {
	cfg := c.Download

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.SearchLimit > MaxSearchLimit {
		cfg.SearchLimit = MaxSearchLimit
	}

	return cfg
}

// Timeout returns the download timeout as a duration.
func (d DownloadConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}
