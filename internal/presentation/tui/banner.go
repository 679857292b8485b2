package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the storelog banner to w using profile.
// termenv.Ascii prints it without colors.
func PrintBanner(w io.Writer, profile termenv.Profile, version string) {
	// Green to blue, the colors of a changed state and of the action payload
	lines := []struct {
		text  string
		color string
	}{
		{"      _                 _             ", "#4caf50"},
		{"  ___| |_ ___  _ __ ___| | ___   __ _ ", "#43a97a"},
		{" / __| __/ _ \\| '__/ _ \\ |/ _ \\ / _` |", "#4aa3a8"},
		{" \\__ \\ || (_) | | |  __/ | (_) | (_| |", "#55acd0"},
		{" |___/\\__\\___/|_|  \\___|_|\\___/ \\__, |", "#60b2ec"},
		{"                                |___/ ", "#69B7FF"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, profile.String(l.text).Foreground(profile.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, profile.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
