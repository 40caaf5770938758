package extract

import (
	"regexp"
	"strings"
)

// Strategy locates the content span for a topic label inside raw text.
// Find returns the untrimmed capture and whether a non-empty one was found.
type Strategy struct {
	Name string
	Find func(text, label string) (string, bool)
}

const (
	headingBoundary   = `(?m)^[ \t]*#{1,6}[ \t]`
	numberedBoundary  = `(?m)^[ \t]*\d+\.[ \t]`
	boldLabelBoundary = `(?m)^[ \t]*(?:[-*•][ \t]+)?\*\*[^*\n]+\*\*|\*\*[^*\n]+\*\*[ \t]*[:\-–]|\*\*[^*\n]+[:\-–]\*\*`
	inlineBoundary    = `(?m)^[ \t]*[A-Z][A-Za-z0-9 &/'\-]{0,50}:`
	labelTail         = `[ \t]*[:\-–]?[ \t]*`
)

var (
	headingRe   = regexp.MustCompile(headingBoundary)
	numberedRe  = regexp.MustCompile(numberedBoundary)
	boldLabelRe = regexp.MustCompile(boldLabelBoundary)
	inlineRe    = regexp.MustCompile(inlineBoundary)
)

// HeaderStrategy matches "## Label" headings that open with the label.
// After "Label:" the content starts on the same line; any other words
// following the label belong to the heading and content starts on the
// next line. Content runs to the next heading or numbered item.
var HeaderStrategy = Strategy{
	Name: "header",
	Find: spanFinder(
		func(q string) string {
			return `(?im)^[ \t]*#{1,6}[ \t]*(?:\d+\.[ \t]*)?(?:\*\*)?` + q + `(?:\*\*)?(?:[ \t]*[:\-–][ \t]*|(?:[^\w\n][^\n]*)?$)`
		},
		headingRe, numberedRe,
	),
}

// EmphasisStrategy matches "**Label**"; content runs to the next bold
// label, numbered item or heading.
var EmphasisStrategy = Strategy{
	Name: "emphasis",
	Find: spanFinder(
		func(q string) string {
			return `(?i)\*\*[ \t]*(?:\d+\.[ \t]*)?` + q + `[ \t]*[:\-–]?[ \t]*\*\*` + labelTail
		},
		boldLabelRe, numberedRe, headingRe,
	),
}

// NumberedStrategy matches "3. Label"; content runs to the next numbered
// item or heading.
var NumberedStrategy = Strategy{
	Name: "numbered",
	Find: spanFinder(
		func(q string) string {
			return `(?im)^[ \t]*\d+\.[ \t]*(?:\*\*)?` + q + `\b(?:\*\*)?` + labelTail
		},
		numberedRe, headingRe,
	),
}

// InlineStrategy matches "Label:" or "Label -"; content runs to the next
// capitalized inline label, numbered item, heading or bold label.
var InlineStrategy = Strategy{
	Name: "inline",
	Find: spanFinder(
		func(q string) string {
			return `(?i)\b` + q + `[ \t]*[:\-–][ \t]*`
		},
		inlineRe, numberedRe, headingRe, boldLabelRe,
	),
}

// LooseStrategy matches the label as a whole word, case-insensitively,
// when whitespace or punctuation follows it, and keeps the rest of the
// line after that. It is the least precise strategy.
var LooseStrategy = Strategy{
	Name: "loose",
	Find: func(text, label string) (string, bool) {
		re, err := regexp.Compile(`(?i)(?:^|\s)` + regexp.QuoteMeta(label) + `[\s.:]+([^\n]+)`)
		if err != nil {
			return "", false
		}
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			rest := strings.TrimLeft(text[loc[2]:loc[3]], " \t:-–*")
			if strings.TrimSpace(rest) != "" {
				return rest, true
			}
		}
		return "", false
	},
}

// DefaultStrategies is the precedence order used by Extract.
var DefaultStrategies = []Strategy{
	HeaderStrategy,
	EmphasisStrategy,
	NumberedStrategy,
	InlineStrategy,
	LooseStrategy,
}

// spanFinder builds a Find func from a start pattern and the boundaries
// that end a span. Boundaries are matched against the whole text so line
// anchors keep their meaning.
func spanFinder(start func(quotedLabel string) string, boundaries ...*regexp.Regexp) func(text, label string) (string, bool) {
	return func(text, label string) (string, bool) {
		re, err := regexp.Compile(start(regexp.QuoteMeta(label)))
		if err != nil {
			return "", false
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			from := loc[1]
			end := nextBoundary(text, from, boundaries)
			if capture := text[from:end]; strings.TrimSpace(capture) != "" {
				return capture, true
			}
		}
		return "", false
	}
}

// nextBoundary returns the earliest boundary index after from, or len(text).
func nextBoundary(text string, from int, boundaries []*regexp.Regexp) int {
	end := len(text)
	for _, b := range boundaries {
		for _, loc := range b.FindAllStringIndex(text, -1) {
			if loc[0] > from || (loc[0] == from && from > 0 && text[from-1] == '\n') {
				if loc[0] < end {
					end = loc[0]
				}
				break
			}
		}
	}
	return end
}
