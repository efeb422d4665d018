package tui

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownWidth is the word-wrap width for rendered markdown.
const MarkdownWidth = 80

var (
	markdownRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer for performance
	markdownRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

func getMarkdownRenderer() *glamour.TermRenderer {
	markdownRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(MarkdownWidth),
		)
		if err == nil {
			markdownRenderer = r
		}
	})
	return markdownRenderer
}

// RenderMarkdown renders md for the terminal. It falls back to the plain
// text when no renderer is available or rendering fails.
func RenderMarkdown(md string) string {
	if !HasColorSupport() {
		return md
	}
	if r := getMarkdownRenderer(); r != nil {
		if out, err := r.Render(md); err == nil {
			return out
		}
	}
	return md
}
