// Package config loads wavelist settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "wavelist"

// Defaults.
const (
	DefaultMediaDir         = "media"
	DefaultAffordanceHeight = 3
	DefaultAnimationMS      = 500
	DefaultLogLevel         = "info"
)

type Config struct {
	// Manifest is a playlist manifest file; empty uses the bundled one.
	Manifest string `koanf:"manifest"`
	// MediaDir holds the media files named by the manifest.
	MediaDir string `koanf:"media_dir"`

	Player  PlayerConfig  `koanf:"player"`
	Log     LogConfig     `koanf:"log"`
	History HistoryConfig `koanf:"history"`
	Notify  NotifyConfig  `koanf:"notify"`
}

// PlayerConfig tunes the now playing affordance.
type PlayerConfig struct {
	AffordanceHeight int `koanf:"affordance_height"` // rows (default: 3)
	AnimationMS      int `koanf:"animation_ms"`      // show/hide duration (default: 500)
}

// AnimationDuration returns AnimationMS as a duration.
func (p PlayerConfig) AnimationDuration() time.Duration {
	return time.Duration(p.AnimationMS) * time.Millisecond
}

// LogConfig selects the log file and level.
type LogConfig struct {
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/wavelist/wavelist.log
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
}

// HistoryConfig controls play history.
type HistoryConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Path    string `koanf:"path"`    // default: $XDG_DATA_HOME/wavelist/history.db
}

// NotifyConfig controls desktop notifications on track change.
type NotifyConfig struct {
	Enabled bool `koanf:"enabled"` // default: false
}

// Load reads the config files in priority order (last wins): the user
// config, ./config.toml, then explicit if not empty. An explicit file
// must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		if err := k.Load(file.Provider(expandPath(explicit)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize expands "~" in paths and fills in the media directory.
// Call it again after overriding fields.
func (c *Config) Normalize() {
	c.Manifest = expandPath(c.Manifest)
	c.MediaDir = expandPath(c.MediaDir)
	if c.MediaDir == "" {
		c.MediaDir = DefaultMediaDir
	}
	c.Log.File = expandPath(c.Log.File)
	c.History.Path = expandPath(c.History.Path)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

func getConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// PlayerSettings returns the player configuration with defaults applied.
func (c *Config) PlayerSettings() PlayerConfig {
	p := c.Player
	if p.AffordanceHeight <= 0 {
		p.AffordanceHeight = DefaultAffordanceHeight
	}
	if p.AnimationMS <= 0 {
		p.AnimationMS = DefaultAnimationMS
	}
	return p
}

// HistoryEnabled reports whether play history is recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// LogFile returns the log file path, defaulting under XDG_STATE_HOME.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}
