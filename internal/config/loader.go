package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor returns the format for a file path based on its extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Load reads the configuration file at path, applies environment overrides
// and defaults, and validates the result. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	return LoadFS(OSFS{}, path, os.LookupEnv)
}

// LoadFS is Load with an explicit file system and environment lookup.
func LoadFS(fsys FileSystem, path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := fsys.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			format, err := FormatFor(path)
			if err != nil {
				return nil, err
			}
			if cfg, err = Parse(path, format, data); err != nil {
				return nil, err
			}
			cfg.Path = path
		}
	}

	if lookupEnv != nil {
		applyEnv(cfg, lookupEnv)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in format. Unknown keys are rejected. Defaults are not
// applied.
func Parse(source string, format Format, data []byte) (*Config, error) {
	cfg := &Config{}
	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, newParseError(source, err)
	}
	return cfg, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		pe.Line, pe.Column = derr.Position()
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		pe.Line, pe.Column = serr.Errors[0].Position()
		pe.Message = serr.Errors[0].Error()
	}
	return pe
}

// envOverrides maps environment variables to setters.
var envOverrides = map[string]func(*Config, string){
	"BLOCKPAD_LOG_LEVEL":       func(c *Config, v string) { c.Log.Level = v },
	"BLOCKPAD_LOG_FORMAT":      func(c *Config, v string) { c.Log.Format = v },
	"BLOCKPAD_STORAGE_BACKEND": func(c *Config, v string) { c.Storage.Backend = v },
	"BLOCKPAD_STORAGE_PATH":    func(c *Config, v string) { c.Storage.Path = v },
	"BLOCKPAD_STORAGE_KEY":     func(c *Config, v string) { c.Storage.Key = v },
}

// applyEnv applies BLOCKPAD_* overrides. Empty values are ignored.
func applyEnv(cfg *Config, lookupEnv func(string) (string, bool)) {
	for name, set := range envOverrides {
		if v, ok := lookupEnv(name); ok && v != "" {
			set(cfg, v)
		}
	}
}
