package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the roster banner, coloured for the terminal's profile.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{"                 _            ", "#818cf8"},
		{"  _ __ ___  ___ | |_ ___ _ __ ", "#a78bfa"},
		{" | '__/ _ \\/ __|| __/ _ \\ '__|", "#c084fc"},
		{" | | | (_) \\__ \\| ||  __/ |   ", "#e879f9"},
		{" |_|  \\___/|___/ \\__\\___|_|   ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
