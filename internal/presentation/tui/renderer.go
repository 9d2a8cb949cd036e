package tui

import (
	"github.com/aretw0/roster/pkg/runner"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a runner.ContentRenderer that renders markdown using glamour.
// When glamour cannot be initialized the markdown is passed through untouched.
func NewRenderer(opts ...glamour.TermRendererOption) runner.ContentRenderer {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle(), glamour.WithWordWrap(80)}
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}
