package logger_test

import (
	"testing"

	"github.com/aretw0/storelog/pkg/logger"
	"github.com/aretw0/storelog/pkg/sink"
	"github.com/aretw0/storelog/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Precedence(t *testing.T) {
	defaultSink := sink.NewRecorder()
	globalSink := sink.NewRecorder()

	defaults := logger.Defaults()
	defaults.Sink = defaultSink

	global := logger.Config{
		Expanded:       logger.Bool(false),
		ShowDuration:   logger.Bool(true),
		MaxDepth:       logger.Int(3),
		IncludeActions: []string{"increment", "decrement"},
		Sink:           globalSink,
	}
	perStore := logger.Config{
		Expanded:       logger.Bool(true),
		DeepClone:      logger.Bool(true),
		IncludeActions: []string{},
		LogLevel:       logger.LevelPtr(logger.LevelWarn),
	}

	eff := logger.Resolve(defaults, global, perStore)

	assert.True(t, eff.Enabled, "from defaults")
	assert.True(t, eff.Expanded, "per-store wins over global")
	assert.True(t, eff.ShowDuration, "global wins over defaults")
	assert.True(t, eff.DeepClone, "per-store only")
	assert.Equal(t, 3, eff.MaxDepth)
	assert.Equal(t, logger.LevelWarn, eff.LogLevel)
	assert.Equal(t, []string{}, eff.IncludeActions, "an empty but set list still overrides")
	assert.Equal(t, []string{}, eff.ExcludeActions)
	assert.Same(t, globalSink, eff.Sink)
	assert.Nil(t, eff.Filter)
}

func TestResolve_Defaults(t *testing.T) {
	eff := logger.Resolve(logger.Defaults(), logger.Config{}, logger.Config{})

	assert.True(t, eff.Enabled)
	assert.True(t, eff.Expanded)
	assert.True(t, eff.ShowStoreName)
	assert.True(t, eff.ShowTimestamp)
	assert.True(t, eff.ShowErrors)
	assert.False(t, eff.ShowDuration)
	assert.False(t, eff.ShowDiff)
	assert.False(t, eff.DeepClone)
	assert.Equal(t, snapshot.Unlimited, eff.MaxDepth)
	assert.Equal(t, logger.LevelDebug, eff.LogLevel)
	assert.NotNil(t, eff.Sink)
}

func TestResolve_EmptyLayers(t *testing.T) {
	eff := logger.Resolve(logger.Config{}, logger.Config{}, logger.Config{MaxDepth: logger.Int(-7)})

	assert.False(t, eff.Enabled)
	assert.Equal(t, snapshot.Unlimited, eff.MaxDepth)
	assert.Equal(t, logger.LevelDebug, eff.LogLevel)
	assert.Nil(t, eff.Sink)
}

func TestStoreConfig(t *testing.T) {
	t.Run("nil and true keep logging on", func(t *testing.T) {
		for _, v := range []any{nil, true, (*logger.Config)(nil)} {
			cfg, enabled, err := logger.StoreConfig(v)
			require.NoError(t, err)
			assert.True(t, enabled)
			assert.Nil(t, cfg.Expanded)
		}
	})

	t.Run("false disables", func(t *testing.T) {
		_, enabled, err := logger.StoreConfig(false)
		require.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("config values are used as the layer", func(t *testing.T) {
		cfg, enabled, err := logger.StoreConfig(logger.Config{Expanded: logger.Bool(false)})
		require.NoError(t, err)
		assert.True(t, enabled)
		require.NotNil(t, cfg.Expanded)
		assert.False(t, *cfg.Expanded)

		cfg, _, err = logger.StoreConfig(&logger.Config{ShowDiff: logger.Bool(true)})
		require.NoError(t, err)
		assert.True(t, *cfg.ShowDiff)
	})

	t.Run("maps are decoded", func(t *testing.T) {
		cfg, enabled, err := logger.StoreConfig(map[string]any{
			"expanded":        false,
			"max_depth":       2,
			"log_level":       "info",
			"exclude_actions": []any{"reset"},
			"show_duration":   "true",
		})
		require.NoError(t, err)
		assert.True(t, enabled)
		assert.False(t, *cfg.Expanded)
		assert.Equal(t, 2, *cfg.MaxDepth)
		assert.Equal(t, logger.LevelInfo, *cfg.LogLevel)
		assert.Equal(t, []string{"reset"}, cfg.ExcludeActions)
		assert.True(t, *cfg.ShowDuration)
		assert.Nil(t, cfg.DeepClone)
	})

	t.Run("levels are normalized", func(t *testing.T) {
		cfg, _, err := logger.StoreConfig(map[string]any{"log_level": "WARNING"})
		require.NoError(t, err)
		assert.Equal(t, logger.LevelWarn, *cfg.LogLevel)

		cfg, _, err = logger.StoreConfig(logger.Config{LogLevel: logger.LevelPtr("Error")})
		require.NoError(t, err)
		assert.Equal(t, logger.LevelError, *cfg.LogLevel)
	})

	t.Run("invalid levels are rejected", func(t *testing.T) {
		_, enabled, err := logger.StoreConfig(map[string]any{"log_level": "loud"})
		assert.ErrorIs(t, err, logger.ErrInvalidStoreOptions)
		assert.ErrorIs(t, err, logger.ErrInvalidLevel)
		assert.True(t, enabled)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, _, err := logger.StoreConfig(map[string]any{"expandd": true})
		assert.ErrorIs(t, err, logger.ErrInvalidStoreOptions)
	})

	t.Run("unsupported types are rejected", func(t *testing.T) {
		_, enabled, err := logger.StoreConfig(42)
		assert.ErrorIs(t, err, logger.ErrInvalidStoreOptions)
		assert.True(t, enabled)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.Level
		wantErr bool
	}{
		{in: "debug", want: logger.LevelDebug},
		{in: " INFO ", want: logger.LevelInfo},
		{in: "warning", want: logger.LevelWarn},
		{in: "error", want: logger.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, logger.ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
