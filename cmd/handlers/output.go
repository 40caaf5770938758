package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"bizplan/internal/core"
)

// readForm loads a business form from a YAML or JSON file. "-" reads stdin.
func readForm(path string) (core.BusinessPlanInput, error) {
	var in core.BusinessPlanInput
	if path == "" {
		return in, nil
	}

	data, err := readSource(path)
	if err != nil {
		return in, fmt.Errorf("failed to read form: %w", err)
	}
	if err := yaml.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("failed to parse form %s: %w", path, err)
	}
	return in, nil
}

func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, result *core.PlanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// printPlan writes a readable markdown rendition of result.
func printPlan(w io.Writer, result *core.PlanResult) {
	name := result.BusinessName
	if name == "" {
		name = "Business Plan"
	}
	fmt.Fprintf(w, "# %s\n\n", name)
	fmt.Fprintf(w, "_%s_\n", result.Message)
	if result.ID != "" {
		fmt.Fprintf(w, "\nID: %s\n", result.ID)
	}
	if result.Data == nil {
		return
	}

	for i, section := range result.Data.Sections {
		fmt.Fprintf(w, "\n## %d. %s\n", i+1, section.Title)
		for _, f := range section.Fields {
			label := f.Key
			if spec, ok := core.LookupField(section.Key, f.Key); ok && len(spec.Labels) > 0 {
				label = spec.Labels[0]
			}
			value := f.Value
			if strings.Contains(value, "\n") {
				value = "\n" + value
			}
			fmt.Fprintf(w, "\n**%s**: %s\n", label, value)
		}
	}
}
