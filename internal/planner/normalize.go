package planner

import (
	"regexp"
	"strings"

	"bizplan/internal/core"
)

// maxStripPasses bounds the header stripping loop and the outer
// normalize loop; each pass removes at least one match so real input
// settles in two or three.
const maxStripPasses = 16

var (
	titlePhrase = `[A-Z][A-Za-z'&/]*(?:[ \-][A-Z][A-Za-z'&/]*){0,5}`

	leadingHeader     = regexp.MustCompile(`^(?:\d+\.[ \t]*)?` + titlePhrase + `[ \t]*(?::|[-–][ \t])[ \t]*`)
	leadingProvenance = regexp.MustCompile(`^(?:See|From)[ \t]+[^:\n]{1,60}:[ \t]*`)
	leadingDash       = regexp.MustCompile(`^(?:[•●▪◦][ \t]*|[-–—*](?:[ \t]+|$))`)
	embeddedNumbered  = regexp.MustCompile(`(^|\s)\d+\.[ \t]+[A-Z][a-z]+(?:[ \-][A-Z][a-z]+){0,4}[ \t]*:[ \t]*`)
	embeddedLabel     = regexp.MustCompile(`\b[A-Z][a-z]+(?:[ \-][A-Z][a-z]+){0,4}:[ \t]*`)
	metaInstructions  = regexp.MustCompile(`(?s)(?:IMPORTANT GUIDELINES:|FORMAT INSTRUCTIONS:).*$`)

	inlineGlyph  = regexp.MustCompile(`[ \t]+[•●▪◦](?:[ \t]*[•●▪◦])*[ \t]*`)
	bulletMarker = regexp.MustCompile(`^(?:[•●▪◦][ \t]*|[-–—*](?:[ \t]+|$))+`)
)

// Normalize cleans every field of plan in place. Fields left empty become
// core.NotSpecified, so every field is non-empty afterwards. Normalize is
// idempotent.
func Normalize(plan *core.BusinessPlan) {
	for i := range plan.Sections {
		for j := range plan.Sections[i].Fields {
			field := &plan.Sections[i].Fields[j]
			field.Value = NormalizeValue(field.Value)
		}
	}
}

// NormalizeValue applies the field cleanup to a single value, repeating
// it until the value stops changing.
func NormalizeValue(value string) string {
	for pass := 0; pass < maxStripPasses; pass++ {
		next := normalizeOnce(value)
		if next == value {
			break
		}
		value = next
	}
	return value
}

func normalizeOnce(value string) string {
	if value == core.NotSpecified {
		return value
	}
	if strings.TrimSpace(value) == "" {
		return core.NotSpecified
	}

	prefix, body := splitProvenance(strings.TrimSpace(value))
	body = stripArtifacts(body)
	body = restructure(body)
	if body == "" {
		return core.NotSpecified
	}
	return prefix + body
}

// splitProvenance separates a "From <Section Title>: " marker written by
// the section fallback so the label sweeps leave it intact.
func splitProvenance(value string) (prefix, body string) {
	for _, spec := range core.Schema {
		marker := provenancePrefix + spec.Title + ": "
		if strings.HasPrefix(value, marker) {
			return marker, value[len(marker):]
		}
	}
	return "", value
}

// stripArtifacts removes header, label and instruction residue until the
// text stops changing.
func stripArtifacts(s string) string {
	for pass := 0; pass < maxStripPasses; pass++ {
		before := s
		s = strings.TrimSpace(s)
		s = leadingHeader.ReplaceAllString(s, "")
		s = leadingProvenance.ReplaceAllString(s, "")
		s = leadingDash.ReplaceAllString(s, "")
		s = embeddedNumbered.ReplaceAllString(s, "${1}")
		s = embeddedLabel.ReplaceAllString(s, "")
		s = metaInstructions.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
		if s == before {
			break
		}
	}
	return s
}

// restructure normalizes paragraph breaks and list formatting line by
// line. Every bullet, whatever glyph or dash it started with, becomes a
// single "- " marker, and a marker with no text after it is dropped.
func restructure(s string) string {
	s = inlineGlyph.ReplaceAllString(s, "\n- ")

	lines := make([]string, 0, strings.Count(s, "\n")+1)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if marker := bulletMarker.FindString(line); marker != "" {
			content := strings.TrimSpace(line[len(marker):])
			if content == "" {
				continue
			}
			line = "- " + content
		}
		if line == "" && (len(lines) == 0 || lines[len(lines)-1] == "") {
			continue
		}
		lines = append(lines, line)
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, line)
		if endsSentence(line) && i+1 < len(lines) && lines[i+1] != "" {
			out = append(out, "")
		}
	}
	return strings.TrimSpace(mergeContinuations(strings.Join(out, "\n")))
}

func endsSentence(line string) bool {
	return strings.HasSuffix(line, ".") || strings.HasSuffix(line, "!") || strings.HasSuffix(line, "?")
}

// mergeContinuations appends a plain line to the bullet directly above it.
func mergeContinuations(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if n := len(out); n > 0 && trimmed != "" && !strings.HasPrefix(trimmed, "- ") {
			prev := out[n-1]
			if strings.HasPrefix(strings.TrimSpace(prev), "- ") {
				out[n-1] = strings.TrimRight(prev, " \t") + " " + trimmed
				continue
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
