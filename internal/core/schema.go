package core

// FieldSpec describes one plan field: its key, the human-readable labels
// tried during extraction (in order) and an optional seed from the input.
type FieldSpec struct {
	Key    string
	Labels []string
	Seed   func(in BusinessPlanInput) string
}

// SectionSpec describes one plan section.
type SectionSpec struct {
	Key    string
	Title  string
	Fields []FieldSpec
}

// Schema is the fixed business-plan layout.
var Schema = []SectionSpec{
	{
		Key:   "executiveSummary",
		Title: "Executive Summary",
		Fields: []FieldSpec{
			{Key: "missionStatement", Labels: []string{"Mission Statement", "Mission", "Company Mission"}},
			{Key: "visionStatement", Labels: []string{"Vision Statement", "Vision", "Company Vision"}},
			{Key: "businessOverview", Labels: []string{"Business Overview", "Company Overview", "Overview"}},
		},
	},
	{
		Key:   "businessOverview",
		Title: "Business Overview",
		Fields: []FieldSpec{
			{Key: "description", Labels: []string{"Business Description", "Company Description", "Overview"},
				Seed: func(in BusinessPlanInput) string { return in.BusinessConcept }},
			{Key: "problemStatement", Labels: []string{"Problem Statement", "Problem", "Market Problem"}},
			{Key: "solution", Labels: []string{"Solution", "Our Solution", "Value Solution"}},
			{Key: "targetMarket", Labels: []string{"Target Market", "Target Audience", "Customer Profile"},
				Seed: func(in BusinessPlanInput) string { return in.TargetMarket }},
			{Key: "marketSize", Labels: []string{"Market Size", "Total Addressable Market", "TAM"}},
		},
	},
	{
		Key:   "productsServices",
		Title: "Products and Services",
		Fields: []FieldSpec{
			{Key: "description", Labels: []string{"Products and Services", "Products/Services", "Offerings"}},
			{Key: "pricingStrategy", Labels: []string{"Pricing Strategy", "Pricing", "Price Points"}},
			{Key: "distributionChannels", Labels: []string{"Distribution Channels", "Distribution", "Sales Channels"}},
		},
	},
	{
		Key:   "marketAnalysis",
		Title: "Market Analysis",
		Fields: []FieldSpec{
			{Key: "marketTrends", Labels: []string{"Market Trends", "Industry Trends", "Trends"}},
			{Key: "customerSegments", Labels: []string{"Customer Segments", "Target Customers", "Demographics"}},
			{Key: "competitiveLandscape", Labels: []string{"Competitive Landscape", "Competition", "Competitors"}},
		},
	},
	{
		Key:   "marketingStrategy",
		Title: "Marketing Strategy",
		Fields: []FieldSpec{
			{Key: "promotionStrategies", Labels: []string{"Promotion Strategies", "Marketing Plan", "Advertising"}},
			{Key: "customerAcquisition", Labels: []string{"Customer Acquisition", "Acquisition Strategy", "User Acquisition"}},
			{Key: "salesPlan", Labels: []string{"Sales Plan", "Sales Strategy", "Revenue Strategy"}},
		},
	},
	{
		Key:   "operationsPlan",
		Title: "Operations Plan",
		Fields: []FieldSpec{
			{Key: "location", Labels: []string{"Business Location", "Location Strategy", "Facilities Location"},
				Seed: func(in BusinessPlanInput) string { return in.Location }},
			{Key: "facilities", Labels: []string{"Facilities", "Physical Space", "Office Space"}},
			{Key: "equipment", Labels: []string{"Equipment", "Technology", "Hardware"}},
			{Key: "dailyOperations", Labels: []string{"Operations", "Daily Operations", "Business Operations"}},
		},
	},
	{
		Key:   "managementTeam",
		Title: "Management Team",
		Fields: []FieldSpec{
			{Key: "organizationalStructure", Labels: []string{"Organizational Structure", "Team Structure", "Management Structure"}},
			{Key: "keyMembers", Labels: []string{"Key Members", "Key Personnel", "Team Members"}},
			{Key: "externalResources", Labels: []string{"External Resources", "Advisors", "Consultants"}},
		},
	},
	{
		Key:   "financialPlan",
		Title: "Financial Plan",
		Fields: []FieldSpec{
			{Key: "startupCosts", Labels: []string{"Startup Costs", "Initial Investment", "Startup Capital"},
				Seed: func(in BusinessPlanInput) string { return in.StartupCosts }},
			{Key: "revenueProjections", Labels: []string{"Revenue Projections", "Expected Revenue", "Projected Income"},
				Seed: func(in BusinessPlanInput) string { return in.ExpectedRevenue }},
			{Key: "operatingCosts", Labels: []string{"Operating Costs", "Operating Expenses", "Monthly Expenses"}},
			{Key: "breakEvenAnalysis", Labels: []string{"Break-Even Analysis", "Break-Even Point", "Profitability Point"}},
		},
	},
	{
		Key:   "riskAnalysis",
		Title: "Risk Analysis",
		Fields: []FieldSpec{
			{Key: "potentialRisks", Labels: []string{"Potential Risks", "Risk Factors", "Business Risks"}},
			{Key: "mitigationStrategies", Labels: []string{"Mitigation Strategies", "Risk Management", "Contingency Plans"}},
		},
	},
	{
		Key:   "timeline",
		Title: "Implementation Timeline",
		Fields: []FieldSpec{
			{Key: "milestones", Labels: []string{"Key Milestones", "Critical Milestones", "Important Dates"},
				Seed: func(in BusinessPlanInput) string { return in.KeyMilestones }},
			{Key: "implementationPlan", Labels: []string{"Implementation Plan", "Execution Plan", "Action Steps"}},
		},
	},
}

// LookupSection returns the spec for a section key.
func LookupSection(key string) (SectionSpec, bool) {
	for _, s := range Schema {
		if s.Key == key {
			return s, true
		}
	}
	return SectionSpec{}, false
}

// LookupField returns the spec for section.field.
func LookupField(section, field string) (FieldSpec, bool) {
	s, ok := LookupSection(section)
	if !ok {
		return FieldSpec{}, false
	}
	for _, f := range s.Fields {
		if f.Key == field {
			return f, true
		}
	}
	return FieldSpec{}, false
}
