package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewMarkdownRenderer returns a description renderer backed by glamour. Plain
// output uses the notty style so no escape codes are emitted. If the renderer
// cannot be built, or a description fails to render, the text is shown as-is.
func NewMarkdownRenderer(width int, plain bool) func(string) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(20, width))}
	if plain {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil
	}
	return func(markdown string) string {
		out, err := r.Render(markdown)
		if err != nil {
			return markdown
		}
		return strings.TrimSpace(out)
	}
}
