package tui

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether both f and stdout are attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
