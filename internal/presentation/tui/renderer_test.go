package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLegend(t *testing.T) {
	render, err := NewRenderer("notty")
	require.NoError(t, err)

	out, err := render(Legend)
	require.NoError(t, err)
	assert.Contains(t, out, "Reading the action log")
	assert.Contains(t, out, "[Circular Reference]")
}
