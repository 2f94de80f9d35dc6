package tui

import (
	"github.com/charmbracelet/glamour"
)

// Render converts markdown for terminal display using glamour, auto-detecting
// light/dark backgrounds. Plain mode returns the markdown unchanged, which is
// what pipes and CI logs want.
func Render(markdown string, plain bool) (string, error) {
	if plain {
		return markdown, nil
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return r.Render(markdown)
}
