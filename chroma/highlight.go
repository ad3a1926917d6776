package chroma

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/emoscope"
)

// Highlighter renders source text with palette colors.
type Highlighter struct {
	tokenizer *Tokenizer
	renderer  *lipgloss.Renderer
}

// NewHighlighter returns a Highlighter for the theme's palette. A nil
// renderer uses the default lipgloss renderer.
func NewHighlighter(palette emoscope.Palette, renderer *lipgloss.Renderer) *Highlighter {
	// StyleFromPalette never returns nil.
	tokenizer, _ := NewTokenizer(StyleFromPalette(palette))
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return &Highlighter{tokenizer: tokenizer, renderer: renderer}
}

// Highlight renders source in the given language. Unsupported languages are
// returned unchanged.
func (h *Highlighter) Highlight(language, source string) string {
	lines := h.tokenizer.TokenizeLines(language, source)
	if lines == nil {
		return source
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		var sb strings.Builder
		for _, tok := range line {
			sb.WriteString(h.render(tok))
		}
		out[i] = sb.String()
	}
	return strings.Join(out, "\n")
}

// JSON highlights a JSON document.
func (h *Highlighter) JSON(source string) string {
	return h.Highlight("json", source)
}

func (h *Highlighter) render(tok Token) string {
	style := h.renderer.NewStyle()
	if tok.Style.Foreground != "" {
		style = style.Foreground(lipgloss.Color(tok.Style.Foreground))
	}
	if tok.Style.Bold {
		style = style.Bold(true)
	}
	return style.Render(tok.Text)
}
