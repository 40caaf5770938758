package llm

import (
	"fmt"
	"strings"

	"bizplan/internal/core"
)

const planGuidelines = `IMPORTANT GUIDELINES:
- Be specific and detailed with practical information
- Provide realistic numbers and timeframes where appropriate
- Write in a professional business tone
- Focus on actionable content that would be valuable to potential investors`

// BuildPlanPrompt renders the submitted form into the generation prompt.
// Every schema section is requested as a numbered heading with one bold
// label per field, the layout the extractor matches first.
func BuildPlanPrompt(in core.BusinessPlanInput) string {
	var sb strings.Builder

	sb.WriteString("Create a detailed business plan for the following business:\n\n")
	formLines := []struct{ label, value string }{
		{"Business Name", in.BusinessName},
		{"Industry", in.Industry},
		{"Business Type", in.BusinessType},
		{"Location", in.Location},
		{"Business Concept", in.BusinessConcept},
		{"Target Market", in.TargetMarket},
		{"Unique Value Proposition", in.UniqueValue},
		{"Initial Investment", in.StartupCosts},
		{"Expected Revenue", in.ExpectedRevenue},
		{"Key Milestones", in.KeyMilestones},
	}
	for _, line := range formLines {
		fmt.Fprintf(&sb, "%s: %s\n", line.label, orNotSpecified(line.value))
	}

	sb.WriteString("\nProvide a comprehensive business plan with the following sections. ")
	sb.WriteString("Start each section with a markdown heading and give every item its own line ")
	sb.WriteString("in the form **Label**: content.\n\n")

	for i, section := range core.Schema {
		fmt.Fprintf(&sb, "## %d. %s\n", i+1, section.Title)
		for _, field := range section.Fields {
			fmt.Fprintf(&sb, "**%s**:\n", field.Labels[0])
		}
		sb.WriteString("\n")
	}

	sb.WriteString(planGuidelines)
	return sb.String()
}

func orNotSpecified(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return core.NotSpecified
	}
	return v
}
