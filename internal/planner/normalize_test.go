package planner

import (
	"strings"
	"testing"

	"bizplan/internal/core"
	"bizplan/internal/markdown"
)

func TestNormalizeValue(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty becomes sentinel",
			input:    "",
			expected: core.NotSpecified,
		},
		{
			name:     "Whitespace becomes sentinel",
			input:    "  \n\t ",
			expected: core.NotSpecified,
		},
		{
			name:     "Sentinel untouched",
			input:    core.NotSpecified,
			expected: core.NotSpecified,
		},
		{
			name:     "Leading numbered header",
			input:    "3. Market Size: About 2 million residents.",
			expected: "About 2 million residents.",
		},
		{
			name:     "Leading dash header",
			input:    "Mission Statement - Bake honest bread.",
			expected: "Bake honest bread.",
		},
		{
			name:     "See prefix",
			input:    "See market analysis: demand is strong.",
			expected: "demand is strong.",
		},
		{
			name:     "Leading dash",
			input:    "- only item",
			expected: "only item",
		},
		{
			name:     "Embedded labels removed",
			input:    "strong demand. 2. Market Trends: more remote work. Note: growing.",
			expected: "strong demand. more remote work. growing.",
		},
		{
			name:     "Trailing guidelines dropped",
			input:    "Solid plan. IMPORTANT GUIDELINES: keep it short",
			expected: "Solid plan.",
		},
		{
			name:     "Excess newlines collapsed",
			input:    "first para\n\n\n\nsecond para",
			expected: "first para\n\nsecond para",
		},
		{
			name:     "Blank line after sentence",
			input:    "First sentence.\nSecond sentence.",
			expected: "First sentence.\n\nSecond sentence.",
		},
		{
			name:     "Bullet glyphs become dashes",
			input:    "Channels include • social media • farmers markets",
			expected: "Channels include\n- social media\n- farmers markets",
		},
		{
			name:     "Continuation merged into bullet",
			input:    "Steps include • open a second store\nin the north end\n• hire staff",
			expected: "Steps include\n- open a second store in the north end\n- hire staff",
		},
		{
			name:     "Negative figure kept",
			input:    "-5% margin in year one",
			expected: "-5% margin in year one",
		},
		{
			name:     "Negative figure after a dash bullet",
			input:    "- -5% margin in year one",
			expected: "-5% margin in year one",
		},
		{
			name:     "Stacked markers collapse to one",
			input:    "- • Hire staff\n- • Buy equipment",
			expected: "Hire staff\n- Buy equipment",
		},
		{
			name:     "Glyph run between items",
			input:    "x ● ▪ y",
			expected: "x\n- y",
		},
		{
			name:     "Bare markers dropped",
			input:    "Plan:\n-\n•\n- real step",
			expected: "real step",
		},
		{
			name:     "Seeded value kept",
			input:    "Austin, TX",
			expected: "Austin, TX",
		},
		{
			name:     "Provenance marker preserved",
			input:    "From Financial Plan: Startup Costs: $50k for ovens...",
			expected: "From Financial Plan: $50k for ovens...",
		},
		{
			name:     "Empty provenance body becomes sentinel",
			input:    "From Financial Plan: ",
			expected: core.NotSpecified,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeValue(tc.input); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Mission - Vision - the real text",
		"• one • two\nthree",
		"- a.\n- b\nwrapped\n\n\n\nlast. Done!\nok",
		"1. Overview: Big Deal - x • y",
		"From Risk Analysis: Risks: weather. • floods",
		"* starred item\n* another",
		"Plain text with no artifacts at all.",
		"- • Hire staff\n- • Buy equipment",
		"• • Hire staff • • Buy equipment",
		"Phase 1 done.\n!\nPhase 2",
		"• • a • b",
		"x ● ▪ y",
		"-5% margin\n- -3% churn",
		"Done.\n\n\n- next.\n-\nmore",
	}

	for _, in := range inputs {
		once := NormalizeValue(in)
		twice := NormalizeValue(once)
		if once != twice {
			t.Errorf("NormalizeValue not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestNormalize_CleanedBulletsSettle(t *testing.T) {
	once := NormalizeValue(markdown.Clean("- • Hire staff\n- • Buy equipment"))
	if once != "Hire staff\n- Buy equipment" {
		t.Errorf("Unexpected result %q", once)
	}
	if twice := NormalizeValue(once); twice != once {
		t.Errorf("Second pass changed %q to %q", once, twice)
	}
	for _, line := range strings.Split(once, "\n") {
		if strings.TrimSpace(line) == "-" {
			t.Errorf("Bare marker line in %q", once)
		}
	}
}

func TestNormalize_Plan(t *testing.T) {
	plan := BuildSkeleton(sampleInput())
	Fill(plan, "")
	Normalize(plan)

	for _, section := range plan.Sections {
		for _, f := range section.Fields {
			if f.Value == "" {
				t.Errorf("%s.%s is empty after Normalize", section.Key, f.Key)
			}
		}
	}
	if got := plan.Get("executiveSummary", "missionStatement"); got != core.NotSpecified {
		t.Errorf("Expected sentinel for unseeded field, got %q", got)
	}
	if got := plan.Get("businessOverview", "description"); got != "Neighborhood sourdough bakery" {
		t.Errorf("Expected seeded value preserved, got %q", got)
	}

	again := plan.Clone()
	Normalize(again)
	for i := range plan.Sections {
		for j := range plan.Sections[i].Fields {
			if plan.Sections[i].Fields[j] != again.Sections[i].Fields[j] {
				t.Errorf("Plan normalize not idempotent at %s", plan.Sections[i].Fields[j].Key)
			}
		}
	}
}

func TestFillAndNormalize_SentinelInvariant(t *testing.T) {
	raws := []string{
		"",
		boldPlan,
		"## Financial Plan\nNo labels here at all, just prose about money.",
		"garbage without any structure",
	}

	for _, raw := range raws {
		plan := BuildSkeleton(core.BusinessPlanInput{BusinessName: "X"})
		Fill(plan, raw)
		Normalize(plan)
		for _, section := range plan.Sections {
			for _, f := range section.Fields {
				if f.Value == "" {
					t.Errorf("raw %q: %s.%s empty", raw, section.Key, f.Key)
				}
			}
		}
	}
}
