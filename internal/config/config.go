package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/blockpad/internal/engine/history"
	"github.com/dshills/blockpad/internal/input/keymap"
	"github.com/dshills/blockpad/internal/store"
	"github.com/dshills/blockpad/internal/trigger"
)

// DefaultStorageKey is the key the document is saved under.
const DefaultStorageKey = "contentState"

// Config is the complete blockpad configuration.
type Config struct {
	Storage  StorageConfig     `toml:"storage" yaml:"storage"`
	Log      LogConfig         `toml:"log" yaml:"log"`
	History  HistoryConfig     `toml:"history" yaml:"history"`
	Styles   StyleMap          `toml:"styles" yaml:"styles"`
	Triggers []TriggerConfig   `toml:"triggers" yaml:"triggers"`
	Keymap   map[string]string `toml:"keymap" yaml:"keymap"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-" yaml:"-"`
}

// StorageConfig selects where documents are persisted.
type StorageConfig struct {
	Backend string `toml:"backend" yaml:"backend"`
	Path    string `toml:"path" yaml:"path"`
	Key     string `toml:"key" yaml:"key"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// TriggerConfig describes one before-input trigger rule.
type TriggerConfig struct {
	Name      string `toml:"name" yaml:"name"`
	Pattern   string `toml:"pattern" yaml:"pattern"`
	BlockType string `toml:"block_type" yaml:"block_type"`
	Style     string `toml:"style" yaml:"style"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultDataDir returns the directory used for file and sqlite storage when
// no path is configured.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "blockpad")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "blockpad")
	}
	return ".blockpad"
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "blockpad", "config.toml")
	}
	return "blockpad.toml"
}

// Normalize fills unset values of cfg with defaults and validates it. Call
// it after changing a loaded configuration.
func Normalize(cfg *Config) error {
	cfg.applyDefaults()
	return cfg.Validate()
}

// applyDefaults fills unset values.
func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = store.BackendFile
	}
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case store.BackendFile:
			c.Storage.Path = DefaultDataDir()
		case store.BackendSQLite:
			c.Storage.Path = filepath.Join(DefaultDataDir(), "blockpad.db")
		}
	}
	c.Storage.Path = expandHome(c.Storage.Path)
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultStorageKey
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = history.DefaultMaxEntries
	}

	c.Styles = DefaultStyles().Merge(c.Styles)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendMemory, store.BackendFile, store.BackendSQLite:
	default:
		return &ValidationError{Path: "storage.backend", Message: "must be memory, file or sqlite", Value: c.Storage.Backend}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &ValidationError{Path: "log.format", Message: "must be text or json", Value: c.Log.Format}
	}
	if c.History.MaxEntries < 0 {
		return &ValidationError{Path: "history.max_entries", Message: "must not be negative", Value: c.History.MaxEntries}
	}
	if err := c.Styles.Validate(); err != nil {
		return err
	}
	if _, err := c.Rules(); err != nil {
		return &ValidationError{Path: "triggers", Message: err.Error(), Value: len(c.Triggers)}
	}
	if err := c.UserKeymap().Validate(); err != nil {
		return &ValidationError{Path: "keymap", Message: err.Error(), Value: len(c.Keymap)}
	}
	return nil
}

// Rules returns the configured trigger rules, or the defaults when none are
// configured.
func (c *Config) Rules() (trigger.Rules, error) {
	if len(c.Triggers) == 0 {
		return trigger.DefaultRules(), nil
	}
	rules := make(trigger.Rules, 0, len(c.Triggers))
	for i, tc := range c.Triggers {
		name := tc.Name
		if name == "" {
			name = fmt.Sprintf("trigger-%d", i+1)
		}
		r, err := trigger.NewRule(name, tc.Pattern, documentBlockType(tc.BlockType), documentStyle(tc.Style))
		if err != nil {
			return nil, fmt.Errorf("triggers[%d]: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// UserKeymap returns the keymap overrides as a keymap that takes precedence
// over the defaults.
func (c *Config) UserKeymap() *keymap.Keymap {
	return keymap.FromMap("user", c.Keymap).WithPriority(10).WithSource("user")
}

// KeymapRegistry returns a registry holding the default keymap and the user
// overrides.
func (c *Config) KeymapRegistry() (*keymap.Registry, error) {
	reg := keymap.NewRegistry()
	if err := reg.Register(keymap.Default()); err != nil {
		return nil, err
	}
	if len(c.Keymap) > 0 {
		if err := reg.Register(c.UserKeymap()); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
