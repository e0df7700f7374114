package render

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/recipecard/core"
)

// MarkdownRenderer converts the HTML card fragment into Markdown, so both
// formats share one layout.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the card as Markdown.
func (r *MarkdownRenderer) Render(recipe core.Recipe) ([]byte, error) {
	fragment, err := executeCard("card", recipe)
	if err != nil {
		return nil, err
	}
	markdown, err := htmltomarkdown.ConvertString(string(fragment))
	if err != nil {
		return nil, fmt.Errorf("converting card to markdown: %w", err)
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ContentType returns the MIME type for Markdown output.
func (r *MarkdownRenderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}
