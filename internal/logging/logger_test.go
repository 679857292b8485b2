package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewText_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf, slog.LevelInfo)

	log.Warn("ignoring options", "error", errors.New("bad"))
	log.Debug("hidden")

	assert.Contains(t, buf.String(), "err=bad")
	assert.NotContains(t, buf.String(), "error=")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, slog.LevelDebug)

	log.Debug("action logged", "error", "boom")
	assert.Contains(t, buf.String(), `"err":"boom"`)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().Error("discarded")
	})
}
