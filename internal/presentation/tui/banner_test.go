package tui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestPrintBanner_Ascii(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii, "1.2.3")

	out := buf.String()
	assert.Contains(t, out, "|___/")
	assert.Contains(t, out, "v1.2.3")
	assert.NotContains(t, out, "\x1b[", "no escape sequences without colors")
}
