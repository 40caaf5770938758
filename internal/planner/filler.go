package planner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"bizplan/internal/core"
	"bizplan/internal/extract"
	"bizplan/internal/markdown"
)

const (
	// excerptLength bounds the section text quoted in a provenance fallback.
	excerptLength = 200
	// provenancePrefix starts every section-level fallback value.
	provenancePrefix = "From "
)

// FillReport counts how the fields of one plan were filled.
type FillReport struct {
	Strategies      map[string]int // field-level hits per extraction strategy
	SectionLabeled  int            // fields found as "label: value" inside a section
	SectionFallback int            // fields given a provenance-marked excerpt
	Unfilled        int            // fields still empty after both passes
}

// Filler drives an Extractor across every field and section of a plan.
type Filler struct {
	extractor *extract.Extractor
}

// NewFiller returns a Filler using e, or the default extractor when nil.
func NewFiller(e *extract.Extractor) *Filler {
	if e == nil {
		e = extract.New()
	}
	return &Filler{extractor: e}
}

// Fill populates plan in place from rawText using the default extractor.
func Fill(plan *core.BusinessPlan, rawText string) FillReport {
	return NewFiller(nil).Fill(plan, rawText)
}

// Fill runs the field pass then the section fallback pass. It is a no-op
// when rawText is blank. Non-empty fields are never overwritten.
func (f *Filler) Fill(plan *core.BusinessPlan, rawText string) FillReport {
	report := FillReport{Strategies: map[string]int{}}
	if strings.TrimSpace(rawText) == "" {
		report.Unfilled = countEmpty(plan)
		return report
	}

	f.fillFields(plan, rawText, &report)
	f.fillSections(plan, rawText, &report)

	report.Unfilled = countEmpty(plan)
	return report
}

func (f *Filler) fillFields(plan *core.BusinessPlan, rawText string, report *FillReport) {
	for i := range plan.Sections {
		section := &plan.Sections[i]
		for j := range section.Fields {
			field := &section.Fields[j]
			if field.Value != "" {
				continue
			}
			spec, ok := core.LookupField(section.Key, field.Key)
			if !ok {
				continue
			}
			for _, label := range spec.Labels {
				m := f.extractor.Find(rawText, label)
				if m.Found() {
					field.Value = m.Text
					report.Strategies[m.Strategy]++
					break
				}
			}
		}
	}
}

func (f *Filler) fillSections(plan *core.BusinessPlan, rawText string, report *FillReport) {
	for i := range plan.Sections {
		section := &plan.Sections[i]
		empty := section.EmptyFields()
		if len(empty) == 0 {
			continue
		}

		sectionText := f.extractor.Extract(rawText, section.Title)
		if sectionText == "" {
			continue
		}

		for _, key := range empty {
			field := section.Field(key)
			if value := labeledValue(sectionText, SimplifyLabel(key)); value != "" {
				field.Value = value
				report.SectionLabeled++
				continue
			}
			field.Value = ProvenanceExcerpt(section.Title, sectionText)
			report.SectionFallback++
		}
	}
}

// labeledValue finds "label: value" inside section text and returns the
// cleaned value up to the end of the line.
func labeledValue(sectionText, label string) string {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(label) + `[ \t]*:[ \t]*([^\n]+)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(sectionText)
	if m == nil {
		return ""
	}
	return markdown.Clean(m[1])
}

// ProvenanceExcerpt marks low-confidence content with the section it came
// from: "From <Section>: <first 200 chars>...".
func ProvenanceExcerpt(sectionTitle, sectionText string) string {
	return fmt.Sprintf("%s%s: %s...", provenancePrefix, sectionTitle, markdown.Truncate(sectionText, excerptLength))
}

// SimplifyLabel turns a field key such as "breakEvenAnalysis" into the
// lower-case label "break even analysis".
func SimplifyLabel(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func countEmpty(plan *core.BusinessPlan) int {
	n := 0
	for i := range plan.Sections {
		n += len(plan.Sections[i].EmptyFields())
	}
	return n
}
