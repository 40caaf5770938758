package planner

import (
	"testing"

	"bizplan/internal/core"
)

func sampleInput() core.BusinessPlanInput {
	return core.BusinessPlanInput{
		BusinessName:    "Rise Bakery",
		Industry:        "Food & Beverage",
		BusinessType:    "LLC",
		Location:        "Austin, TX",
		BusinessConcept: "Neighborhood sourdough bakery",
		TargetMarket:    "Young professionals",
		UniqueValue:     "Bread baked within the hour",
		StartupCosts:    "$85,000",
		ExpectedRevenue: "$400,000 in year one",
		KeyMilestones:   "Open storefront in Q2",
	}
}

func TestBuildSkeleton_SeedsInput(t *testing.T) {
	plan := BuildSkeleton(sampleInput())

	seeded := map[[2]string]string{
		{"businessOverview", "description"}:     "Neighborhood sourdough bakery",
		{"businessOverview", "targetMarket"}:    "Young professionals",
		{"operationsPlan", "location"}:          "Austin, TX",
		{"financialPlan", "startupCosts"}:       "$85,000",
		{"financialPlan", "revenueProjections"}: "$400,000 in year one",
		{"timeline", "milestones"}:              "Open storefront in Q2",
	}

	for _, section := range plan.Sections {
		for _, f := range section.Fields {
			want := seeded[[2]string{section.Key, f.Key}]
			if f.Value != want {
				t.Errorf("%s.%s: expected %q, got %q", section.Key, f.Key, want, f.Value)
			}
		}
	}
}

func TestBuildSkeleton_EmptyInput(t *testing.T) {
	plan := BuildSkeleton(core.BusinessPlanInput{})

	if len(plan.Sections) != len(core.Schema) {
		t.Fatalf("Expected %d sections, got %d", len(core.Schema), len(plan.Sections))
	}
	for i, spec := range core.Schema {
		section := plan.Sections[i]
		if section.Key != spec.Key {
			t.Errorf("Expected section %s at %d, got %s", spec.Key, i, section.Key)
		}
		if len(section.Fields) != len(spec.Fields) {
			t.Errorf("Section %s: expected %d fields, got %d", spec.Key, len(spec.Fields), len(section.Fields))
		}
		for _, f := range section.Fields {
			if f.Value != "" {
				t.Errorf("%s.%s should be empty, got %q", section.Key, f.Key, f.Value)
			}
		}
	}
}
