// Package config loads the storelog configuration file and environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aretw0/storelog/pkg/logger"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// File is the on-disk configuration.
//
//	logger:
//	  expanded: false
//	  show_duration: true
//	stores:
//	  cart: false
//	  counter:
//	    deep_clone: true
//	    max_depth: 2
type File struct {
	// Logger is the global layer.
	Logger logger.Config `yaml:"logger"`

	// Stores holds the per-store options, keyed by store ID. Values are booleans or maps
	// understood by logger.StoreConfig.
	Stores map[string]any `yaml:"stores"`
}

// Load reads the file at path and applies the environment overrides on top of it.
// An empty path or a missing file yields an empty configuration.
func Load(path string) (*File, error) {
	f := &File{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if f, err = Parse(data); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	var overrides EnvOverrides
	if err := ParseEnv(&overrides); err != nil {
		return nil, err
	}
	if err := overrides.Apply(&f.Logger); err != nil {
		return nil, err
	}
	return f, nil
}

// Parse decodes a YAML document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	f := &File{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	if f.Logger.LogLevel != nil {
		level, err := logger.ParseLevel(string(*f.Logger.LogLevel))
		if err != nil {
			return fmt.Errorf("%w: logger.log_level: %w", ErrInvalidConfig, err)
		}
		f.Logger.LogLevel = &level
	}
	for id, opts := range f.Stores {
		if _, _, err := logger.StoreConfig(opts); err != nil {
			return fmt.Errorf("%w: stores.%s: %w", ErrInvalidConfig, id, err)
		}
	}
	return nil
}

// StoreOptions returns the per-store options of id, ready for
// store.WithPluginOptions(logger.PluginName, ...).
func (f *File) StoreOptions(id string) (any, bool) {
	if f == nil {
		return nil, false
	}
	opts, ok := f.Stores[id]
	return opts, ok
}
