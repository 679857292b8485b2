package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/storelog/internal/testutils"
	"github.com/aretw0/storelog/pkg/logger"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDemo(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := newDemoCmd()
	cmd.Flags().Bool("verbose", false, "")
	require.NoError(t, cmd.ParseFlags(args))
	cmd.SetContext(context.Background())
	return cmd
}

func TestApplyFlags(t *testing.T) {
	cmd := parseDemo(t, "--max-depth", "2", "--collapsed", "--diff", "--only", "increment,reset")

	cfg := logger.Config{ShowDuration: logger.Bool(true)}
	applyFlags(cmd, &cfg)

	assert.Equal(t, 2, *cfg.MaxDepth)
	assert.True(t, *cfg.DeepClone, "a depth limit turns deep snapshots on")
	assert.False(t, *cfg.Expanded)
	assert.True(t, *cfg.ShowDiff)
	assert.True(t, *cfg.ShowDuration, "unset flags keep the configured value")
	assert.Equal(t, []string{"increment", "reset"}, cfg.IncludeActions)
	assert.Nil(t, cfg.ExcludeActions)
}

func TestApplyFlags_ExplicitShallow(t *testing.T) {
	cmd := parseDemo(t, "--deep=false", "--max-depth", "1")

	var cfg logger.Config
	applyFlags(cmd, &cfg)
	assert.False(t, *cfg.DeepClone)
}

func TestColorProfile(t *testing.T) {
	var buf bytes.Buffer

	p, err := colorProfile(colorNever, &buf)
	require.NoError(t, err)
	assert.Equal(t, termenv.Ascii, p)

	p, err = colorProfile(colorAlways, &buf)
	require.NoError(t, err)
	assert.Equal(t, termenv.TrueColor, p)

	p, err = colorProfile(colorAuto, &buf)
	require.NoError(t, err)
	assert.Equal(t, termenv.Ascii, p, "a buffer is not a terminal")

	_, err = colorProfile("rainbow", &buf)
	assert.ErrorIs(t, err, errInvalidFlag)
}

func TestNewSink_InvalidFormat(t *testing.T) {
	_, err := newSink("xml", &bytes.Buffer{}, termenv.Ascii)
	assert.ErrorIs(t, err, errInvalidFlag)
}

func TestRunDemo_Console(t *testing.T) {
	path := testutils.WriteFile(t, "storelog.yaml", "logger:\n  show_timestamp: false\n")

	var out bytes.Buffer
	cmd := parseDemo(t, "--config", path, "--color", "never", "--delay", "1ms", "--metrics")
	cmd.SetOut(&out)

	require.NoError(t, runDemo(cmd, nil))

	got := out.String()
	assert.Contains(t, got, "action 🍍 [counter] increment ✅")
	assert.Contains(t, got, "action 🍍 [counter] incrementWithError ❌")
	assert.Contains(t, got, "action 🍍 [counter] clearHistory ⚪")
	assert.Contains(t, got, "ℹ️ No state changes")
	assert.Contains(t, got, `storelog_actions_total{action="incrementWithError",outcome="error",store="counter"} 1`)
	assert.NotContains(t, got, "\x1b[")
}

func TestRunDemo_Slog(t *testing.T) {
	var out bytes.Buffer
	cmd := parseDemo(t, "--config", "", "--format", "slog", "--delay", "1ms", "--only", "increment")
	cmd.SetOut(&out)

	require.NoError(t, runDemo(cmd, nil))

	got := out.String()
	assert.Contains(t, got, `"msg":"prev state"`)
	assert.Contains(t, got, `"group":"action 🍍 [counter] increment`)
	assert.NotContains(t, got, "decrement")
	assert.NotContains(t, got, "|___/", "no banner in slog mode")
}
