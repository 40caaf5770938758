package llm

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlTagPattern   = regexp.MustCompile(`(?i)<(?:p|div|br|h[1-6]|ul|ol|li|strong|b|em|i|span|table|body|html)\b[^>]*>`)
	excessBlankLines = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
)

// SanitizeResponse normalizes a raw model answer into markdown-ish text.
// Models occasionally answer in HTML; that markup is converted so headings,
// bold labels and list items survive as the markdown the extractor expects.
func SanitizeResponse(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	if !htmlTagPattern.MatchString(raw) {
		return strings.TrimSpace(raw)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}

	doc.Find("script, style, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("strong, b").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml(html.EscapeString("**" + strings.TrimSpace(s.Text()) + "**"))
	})
	doc.Find("em, i").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml(html.EscapeString(s.Text()))
	})
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml(html.EscapeString("\n\n## " + strings.TrimSpace(s.Text()) + "\n\n"))
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml(html.EscapeString("\n- " + strings.TrimSpace(s.Text()) + "\n"))
	})
	doc.Find("p, div, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	text := doc.Text()
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
