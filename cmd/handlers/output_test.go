package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bizplan/internal/core"
)

func TestReadForm(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "form.yaml")
	os.WriteFile(yamlPath, []byte("businessName: Rise Bakery\nindustry: Food\nuseAI: false\n"), 0o644)

	jsonPath := filepath.Join(dir, "form.json")
	os.WriteFile(jsonPath, []byte(`{"businessName":"Rise Bakery","location":"Portland"}`), 0o644)

	in, err := readForm(yamlPath)
	if err != nil {
		t.Fatalf("readForm(yaml) failed: %v", err)
	}
	if in.BusinessName != "Rise Bakery" || in.Industry != "Food" || in.WantsAI() {
		t.Errorf("unexpected yaml form: %+v", in)
	}

	in, err = readForm(jsonPath)
	if err != nil {
		t.Fatalf("readForm(json) failed: %v", err)
	}
	if in.Location != "Portland" || !in.WantsAI() {
		t.Errorf("unexpected json form: %+v", in)
	}

	if _, err := readForm(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	in, err = readForm("")
	if err != nil || in.BusinessName != "" {
		t.Errorf("empty path should give an empty form, got %+v, %v", in, err)
	}
}

func TestPrintPlan(t *testing.T) {
	plan := core.NewBusinessPlan()
	plan.Set("executiveSummary", "missionStatement", "Bake bread")
	plan.Set("marketingStrategy", "promotionStrategies", "- social media\n- markets")

	var buf bytes.Buffer
	printPlan(&buf, &core.PlanResult{
		ID:           "plan-1",
		Data:         plan,
		BusinessName: "Rise Bakery",
		Message:      "Generated with AI",
	})
	out := buf.String()

	for _, want := range []string{
		"# Rise Bakery",
		"_Generated with AI_",
		"ID: plan-1",
		"## 1. Executive Summary",
		"**Mission Statement**: Bake bread",
		"**Promotion Strategies**: \n- social media\n- markets",
		"## 10. Implementation Timeline",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}
