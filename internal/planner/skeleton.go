// Package planner builds the business-plan skeleton, fills it from
// generated text and normalizes the result for display.
package planner

import "bizplan/internal/core"

// BuildSkeleton returns the fixed plan structure with the seeded fields
// copied verbatim from the input and every other field empty.
func BuildSkeleton(in core.BusinessPlanInput) *core.BusinessPlan {
	plan := core.NewBusinessPlan()
	for i, spec := range core.Schema {
		for j, f := range spec.Fields {
			if f.Seed != nil {
				plan.Sections[i].Fields[j].Value = f.Seed(in)
			}
		}
	}
	return plan
}
