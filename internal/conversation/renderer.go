package conversation

import (
	"github.com/charmbracelet/glamour"
)

// Renderer pretty-prints markdown responses for the terminal. In plain
// mode, or when glamour cannot be set up, it passes text through
// unchanged so responses are never lost to a rendering problem.
type Renderer struct {
	term *glamour.TermRenderer
}

// NewRenderer creates a Renderer wrapping output at width columns.
// With plain set, markdown is passed through untouched; use it when
// stdout is not a terminal or rendering is disabled in the config.
func NewRenderer(width int, plain bool) *Renderer {
	if plain {
		return &Renderer{}
	}

	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Renderer{}
	}

	return &Renderer{term: term}
}

// Render renders markdown, falling back to the raw text in plain mode
// or on a rendering error.
func (r *Renderer) Render(markdown string) string {
	if r.term == nil {
		return markdown
	}

	out, err := r.term.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
