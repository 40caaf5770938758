package core

import (
	"bytes"
	"encoding/json"
	"time"
)

// NotSpecified marks a field with no seeded or extractable content.
const NotSpecified = "Not specified"

// BusinessPlanInput is the form a user submits to request a plan.
type BusinessPlanInput struct {
	BusinessName    string `json:"businessName" yaml:"businessName"`
	Industry        string `json:"industry" yaml:"industry"`
	BusinessType    string `json:"businessType" yaml:"businessType"`
	Location        string `json:"location" yaml:"location"`
	BusinessConcept string `json:"businessConcept" yaml:"businessConcept"`
	TargetMarket    string `json:"targetMarket" yaml:"targetMarket"`
	UniqueValue     string `json:"uniqueValue" yaml:"uniqueValue"`
	StartupCosts    string `json:"startupCosts" yaml:"startupCosts"`
	ExpectedRevenue string `json:"expectedRevenue" yaml:"expectedRevenue"`
	KeyMilestones   string `json:"keyMilestones" yaml:"keyMilestones"`

	// UseAI requests model generation. Nil means yes.
	UseAI *bool `json:"useAI,omitempty" yaml:"useAI,omitempty"`
}

// WantsAI reports whether the submitter asked for model generation.
func (in BusinessPlanInput) WantsAI() bool {
	return in.UseAI == nil || *in.UseAI
}

// Field is a single named value inside a plan section.
type Field struct {
	Key   string
	Value string
}

// Section groups the fields of one business-plan chapter.
type Section struct {
	Key    string
	Title  string
	Fields []Field
}

// BusinessPlan is the fixed two-level plan structure. Sections and fields
// always follow Schema order and every field key is always present.
type BusinessPlan struct {
	Sections []Section
}

// NewBusinessPlan returns a plan with every schema field set to "".
func NewBusinessPlan() *BusinessPlan {
	plan := &BusinessPlan{Sections: make([]Section, 0, len(Schema))}
	for _, spec := range Schema {
		section := Section{Key: spec.Key, Title: spec.Title, Fields: make([]Field, 0, len(spec.Fields))}
		for _, f := range spec.Fields {
			section.Fields = append(section.Fields, Field{Key: f.Key})
		}
		plan.Sections = append(plan.Sections, section)
	}
	return plan
}

// Section returns the section with the given key, or nil.
func (p *BusinessPlan) Section(key string) *Section {
	for i := range p.Sections {
		if p.Sections[i].Key == key {
			return &p.Sections[i]
		}
	}
	return nil
}

// Field returns the field with the given key, or nil.
func (s *Section) Field(key string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Key == key {
			return &s.Fields[i]
		}
	}
	return nil
}

// Get returns the value of section.field, or "" when the pair is unknown.
func (p *BusinessPlan) Get(section, field string) string {
	s := p.Section(section)
	if s == nil {
		return ""
	}
	if f := s.Field(field); f != nil {
		return f.Value
	}
	return ""
}

// Set assigns section.field and reports whether the pair exists.
func (p *BusinessPlan) Set(section, field, value string) bool {
	s := p.Section(section)
	if s == nil {
		return false
	}
	f := s.Field(field)
	if f == nil {
		return false
	}
	f.Value = value
	return true
}

// Clone returns a deep copy of the plan.
func (p *BusinessPlan) Clone() *BusinessPlan {
	out := &BusinessPlan{Sections: make([]Section, len(p.Sections))}
	for i, s := range p.Sections {
		out.Sections[i] = Section{Key: s.Key, Title: s.Title, Fields: append([]Field(nil), s.Fields...)}
	}
	return out
}

// EmptyFields returns the keys of the fields in s whose value is "".
func (s *Section) EmptyFields() []string {
	var keys []string
	for _, f := range s.Fields {
		if f.Value == "" {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// MarshalJSON writes the plan as nested objects keyed by section and field,
// preserving schema order.
func (p *BusinessPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range p.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":{")
		for j, f := range s.Fields {
			if j > 0 {
				buf.WriteByte(',')
			}
			fk, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			fv, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(fk)
			buf.WriteByte(':')
			buf.Write(fv)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads nested section/field objects into the schema shape.
// Unknown keys are ignored and missing keys stay "".
func (p *BusinessPlan) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	plan := NewBusinessPlan()
	for i := range plan.Sections {
		values, ok := raw[plan.Sections[i].Key]
		if !ok {
			continue
		}
		for j := range plan.Sections[i].Fields {
			plan.Sections[i].Fields[j].Value = values[plan.Sections[i].Fields[j].Key]
		}
	}
	*p = *plan
	return nil
}

// PlanResult is what a plan-generation request produces for its caller and
// what the plan store persists.
type PlanResult struct {
	ID              string        `json:"id"`
	Data            *BusinessPlan `json:"data"`
	BusinessName    string        `json:"businessName"`
	Industry        string        `json:"industry"`
	BusinessType    string        `json:"businessType"`
	Location        string        `json:"location"`
	Message         string        `json:"message"`
	GeneratedWithAI bool          `json:"generatedWithAI"`
	Error           string        `json:"error,omitempty"`
	RawResponse     string        `json:"rawResponse,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}
