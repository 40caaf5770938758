package markdown

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML converts markdown text to HTML for template rendering.
func ToHTML(text string) template.HTML {
	if text == "" {
		return template.HTML("")
	}

	// parsers are stateful, build one per call
	mdParser := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})

	return template.HTML(markdown.ToHTML([]byte(text), mdParser, renderer))
}
