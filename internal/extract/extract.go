// Package extract locates the content for a topic label inside free-form
// generated text using an ordered set of pattern strategies.
package extract

import (
	"regexp"
	"strings"

	"bizplan/internal/markdown"
)

// Match is the outcome of one extraction.
type Match struct {
	Text     string // refined content, "" when nothing matched
	Strategy string // name of the strategy that matched
	Raw      string // capture before refinement
}

// Found reports whether the match carries content.
func (m Match) Found() bool { return m.Text != "" }

// Extractor runs strategies in order; the first non-empty capture wins.
type Extractor struct {
	strategies []Strategy
}

// New returns an Extractor over the given strategies, or DefaultStrategies
// when none are given.
func New(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}
	return &Extractor{strategies: strategies}
}

var defaultExtractor = New()

// Extract returns the refined content for label, or "" when not found.
func Extract(rawText, label string) string {
	return defaultExtractor.Extract(rawText, label)
}

// Find is Extract with the matching strategy reported.
func Find(rawText, label string) Match {
	return defaultExtractor.Find(rawText, label)
}

// Extract returns the refined content for label, or "".
func (e *Extractor) Extract(rawText, label string) string {
	return e.Find(rawText, label).Text
}

// Find tries each strategy in order. Later strategies are not consulted
// once one yields a capture, even if refinement empties it.
func (e *Extractor) Find(rawText, label string) Match {
	label = strings.TrimSpace(label)
	if rawText == "" || label == "" {
		return Match{}
	}
	rawText = strings.ReplaceAll(rawText, "\r\n", "\n")
	for _, s := range e.strategies {
		capture, ok := s.Find(rawText, label)
		if !ok {
			continue
		}
		return Match{
			Text:     Refine(capture, label),
			Strategy: s.Name,
			Raw:      capture,
		}
	}
	return Match{}
}

var preamblePattern = regexp.MustCompile(`(?i)here is a detailed business plan|based on the information provided|for your consideration|for the following business|please provide a detailed business plan|i['’]ll create a detailed business plan`)

// StripPreamble removes generation preamble phrases wherever they occur.
func StripPreamble(s string) string {
	s = preamblePattern.ReplaceAllString(s, "")
	return strings.Trim(strings.TrimSpace(s), ":,;– ")
}

// Narrow keeps only the sentence after a repeated "label:" inside an
// already cleaned capture. It returns s unchanged when no such sentence
// exists.
func Narrow(s, label string) string {
	if !strings.Contains(strings.ToLower(s), strings.ToLower(label)) {
		return s
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(label) + `[ \t]*[:\-–][ \t]*([^.]*\.)`)
	if err != nil {
		return s
	}
	m := re.FindStringSubmatch(s)
	if m == nil || strings.TrimSpace(m[1]) == "." {
		return s
	}
	return strings.TrimSpace(m[1])
}

// Refine runs the post-match chain: clean, narrow, strip preamble.
func Refine(capture, label string) string {
	return markdown.Chain(
		markdown.Clean,
		func(s string) string { return Narrow(s, label) },
		StripPreamble,
	)(capture)
}
