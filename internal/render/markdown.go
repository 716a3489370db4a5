package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultWidth = 100

// Options controls how an answer is rendered.
type Options struct {
	Markdown bool
	Width    int
	// Style is a glamour style name; empty or "auto" follows the terminal.
	Style string
}

type rendererKey struct {
	width int
	style string
}

var renderers sync.Map

// Answer renders text for the terminal. Without markdown, or when the
// renderer fails, it returns the text with surrounding blank lines trimmed.
func Answer(text string, opts Options) string {
	clean := strings.Trim(text, "\n")
	if strings.TrimSpace(clean) == "" || !opts.Markdown {
		return clean
	}

	key := rendererKey{width: opts.Width, style: strings.ToLower(strings.TrimSpace(opts.Style))}
	if key.width <= 0 {
		key.width = defaultWidth
	}
	if key.style == "" {
		key.style = "auto"
	}

	r, err := renderer(key)
	if err != nil {
		return clean
	}
	out, err := r.Render(clean)
	if err != nil {
		return clean
	}
	return strings.Trim(out, "\n")
}

func renderer(key rendererKey) (*glamour.TermRenderer, error) {
	if cached, ok := renderers.Load(key); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	style := glamour.WithAutoStyle()
	if key.style != "auto" {
		style = glamour.WithStandardStyle(key.style)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(key.width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	renderers.Store(key, r)
	return r, nil
}
