package logger

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/storelog/pkg/sink"
	"github.com/aretw0/storelog/pkg/snapshot"
	"github.com/aretw0/storelog/pkg/store"
	"github.com/mitchellh/mapstructure"
)

// Level is the severity attached to the plugin's own trace records.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel converts a level name (case-insensitive) into a Level.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l, nil
	case "warning":
		return LevelWarn, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// Slog maps the level to its slog equivalent. Unknown levels map to debug.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelDebug
}

// FilterFunc decides whether an action is logged.
type FilterFunc func(*store.ActionContext) bool

// Config is one configuration layer. Nil fields are unset and fall through to the layer
// below (see Resolve).
type Config struct {
	Enabled       *bool `yaml:"enabled" mapstructure:"enabled"`
	Expanded      *bool `yaml:"expanded" mapstructure:"expanded"`
	ShowStoreName *bool `yaml:"show_store_name" mapstructure:"show_store_name"`
	ShowTimestamp *bool `yaml:"show_timestamp" mapstructure:"show_timestamp"`
	ShowErrors    *bool `yaml:"show_errors" mapstructure:"show_errors"`
	ShowDuration  *bool `yaml:"show_duration" mapstructure:"show_duration"`
	ShowDiff      *bool `yaml:"show_diff" mapstructure:"show_diff"`

	// DeepClone selects deep snapshots (slower, isolated) over shallow ones.
	DeepClone *bool `yaml:"deep_clone" mapstructure:"deep_clone"`

	// MaxDepth bounds deep snapshots; negative means unlimited.
	MaxDepth *int `yaml:"max_depth" mapstructure:"max_depth"`

	LogLevel *Level `yaml:"log_level" mapstructure:"log_level"`

	// IncludeActions, when non-empty, restricts logging to the listed actions.
	IncludeActions []string `yaml:"include_actions" mapstructure:"include_actions"`
	ExcludeActions []string `yaml:"exclude_actions" mapstructure:"exclude_actions"`

	Filter           FilterFunc             `yaml:"-" mapstructure:"-"`
	StateTransformer snapshot.TransformFunc `yaml:"-" mapstructure:"-"`
	Sink             sink.Sink              `yaml:"-" mapstructure:"-"`
}

// Effective is the resolved configuration of one store.
type Effective struct {
	Enabled       bool
	Expanded      bool
	ShowStoreName bool
	ShowTimestamp bool
	ShowErrors    bool
	ShowDuration  bool
	ShowDiff      bool
	DeepClone     bool
	MaxDepth      int
	LogLevel      Level

	IncludeActions []string
	ExcludeActions []string

	Filter           FilterFunc
	StateTransformer snapshot.TransformFunc
	Sink             sink.Sink
}

// Bool returns a pointer to b, for building Config literals.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n, for building Config literals.
func Int(n int) *int { return &n }

// LevelPtr returns a pointer to l, for building Config literals.
func LevelPtr(l Level) *Level { return &l }

// Defaults returns the bottom configuration layer: everything shown except durations
// and diffs, expanded groups, shallow snapshots without depth limit, debug level and a
// console sink on stdout.
func Defaults() Config {
	return Config{
		Enabled:        Bool(true),
		Expanded:       Bool(true),
		ShowStoreName:  Bool(true),
		ShowTimestamp:  Bool(true),
		ShowErrors:     Bool(true),
		ShowDuration:   Bool(false),
		ShowDiff:       Bool(false),
		DeepClone:      Bool(false),
		MaxDepth:       Int(snapshot.Unlimited),
		LogLevel:       LevelPtr(LevelDebug),
		IncludeActions: []string{},
		ExcludeActions: []string{},
		Sink:           sink.NewConsole(nil),
	}
}

// Resolve merges the layers field by field. For every field the value of the highest
// layer that sets it wins: perStore over global over defaults. A field unset in every
// layer takes its zero value. A negative MaxDepth resolves to snapshot.Unlimited.
func Resolve(defaults, global, perStore Config) Effective {
	layers := []Config{defaults, global, perStore}

	e := Effective{
		Enabled:       pick(layers, func(c Config) *bool { return c.Enabled }),
		Expanded:      pick(layers, func(c Config) *bool { return c.Expanded }),
		ShowStoreName: pick(layers, func(c Config) *bool { return c.ShowStoreName }),
		ShowTimestamp: pick(layers, func(c Config) *bool { return c.ShowTimestamp }),
		ShowErrors:    pick(layers, func(c Config) *bool { return c.ShowErrors }),
		ShowDuration:  pick(layers, func(c Config) *bool { return c.ShowDuration }),
		ShowDiff:      pick(layers, func(c Config) *bool { return c.ShowDiff }),
		DeepClone:     pick(layers, func(c Config) *bool { return c.DeepClone }),
		MaxDepth:      pick(layers, func(c Config) *int { return c.MaxDepth }),
		LogLevel:      pick(layers, func(c Config) *Level { return c.LogLevel }),
	}

	for _, l := range layers {
		if l.IncludeActions != nil {
			e.IncludeActions = l.IncludeActions
		}
		if l.ExcludeActions != nil {
			e.ExcludeActions = l.ExcludeActions
		}
		if l.Filter != nil {
			e.Filter = l.Filter
		}
		if l.StateTransformer != nil {
			e.StateTransformer = l.StateTransformer
		}
		if l.Sink != nil {
			e.Sink = l.Sink
		}
	}

	if e.MaxDepth < 0 {
		e.MaxDepth = snapshot.Unlimited
	}
	if e.LogLevel == "" {
		e.LogLevel = LevelDebug
	}
	return e
}

func pick[T any](layers []Config, get func(Config) *T) T {
	var out T
	for _, l := range layers {
		if v := get(l); v != nil {
			out = *v
		}
	}
	return out
}

// StoreConfig interprets the per-store options registered with
// store.WithPluginOptions(PluginName, v):
//
//   - nil or true: no per-store layer, logging enabled;
//   - false: logging disabled for the store;
//   - Config or *Config: the per-store layer;
//   - map[string]any: decoded into Config (keys as in the YAML configuration).
//
// The log level of the layer is validated and normalized.
func StoreConfig(v any) (cfg Config, enabled bool, err error) {
	switch opts := v.(type) {
	case nil:
		return Config{}, true, nil
	case bool:
		return Config{}, opts, nil
	case Config:
		cfg = opts
	case *Config:
		if opts == nil {
			return Config{}, true, nil
		}
		cfg = *opts
	case map[string]any:
		if err := decode(opts, &cfg); err != nil {
			return Config{}, true, err
		}
	default:
		return Config{}, true, fmt.Errorf("%w: unsupported type %T", ErrInvalidStoreOptions, v)
	}

	if cfg.LogLevel != nil {
		level, err := ParseLevel(string(*cfg.LogLevel))
		if err != nil {
			return Config{}, true, fmt.Errorf("%w: log_level: %w", ErrInvalidStoreOptions, err)
		}
		cfg.LogLevel = &level
	}
	return cfg, true, nil
}

func decode(input map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStoreOptions, err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStoreOptions, err)
	}
	return nil
}
