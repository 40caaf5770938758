// Package markdown provides text cleanup for generated markdown and
// rendering of plan content for display.
package markdown

import (
	"regexp"
	"strings"
)

// Transform is a pure text-to-text step.
type Transform func(string) string

// Chain composes transforms left to right.
func Chain(steps ...Transform) Transform {
	return func(s string) string {
		for _, step := range steps {
			s = step(s)
		}
		return s
	}
}

var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnderscore    = regexp.MustCompile(`__([^_]+)__`)
	italicPattern     = regexp.MustCompile(`\*([^*\n]+)\*`)
	strayEmphasis     = regexp.MustCompile(`\*{2,}|_{2,}`)
	codeFencePattern  = regexp.MustCompile("```[A-Za-z0-9_-]*")
	boilerplateSuffix = regexp.MustCompile(`(?s)(?:FORMAT INSTRUCTIONS:|IMPORTANT:|Use simple formatting|Be concise|When referring to|Provide practical).*$`)
	dashBullet        = regexp.MustCompile(`(?m)^[ \t]*-[ \t]+`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
)

// Bullet is the glyph Clean substitutes for leading dash bullets.
const Bullet = "•"

// StripEmphasis removes bold and italic markers, keeping their content.
func StripEmphasis(s string) string {
	s = boldPattern.ReplaceAllString(s, "$1")
	s = boldUnderscore.ReplaceAllString(s, "$1")
	s = italicPattern.ReplaceAllString(s, "$1")
	return strayEmphasis.ReplaceAllString(s, "")
}

// StripCodeFences removes ``` delimiters, keeping the fenced content.
func StripCodeFences(s string) string {
	return codeFencePattern.ReplaceAllString(s, "")
}

// StripBoilerplate drops everything from the first meta-instruction phrase
// to the end of the text.
func StripBoilerplate(s string) string {
	return boilerplateSuffix.ReplaceAllString(s, "")
}

// BulletGlyphs turns line-leading "- " bullets into the bullet glyph.
func BulletGlyphs(s string) string {
	return dashBullet.ReplaceAllString(s, Bullet+" ")
}

// CollapseWhitespace replaces every whitespace run with one space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Clean strips markdown decoration and trailing instruction boilerplate from
// a fragment of generated text. Bullets are converted while line starts are
// still visible, then whitespace is collapsed.
var Clean = Chain(
	StripEmphasis,
	StripCodeFences,
	StripBoilerplate,
	BulletGlyphs,
	CollapseWhitespace,
)

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
