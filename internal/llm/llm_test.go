package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"

	"bizplan/internal/config"
	"bizplan/internal/core"
)

func TestNewClient_NoAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), Options{APIKey: "  "})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestNewClient_Success(t *testing.T) {
	// Skip if no API key available (for CI/CD)
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}

	client, err := NewClient(context.Background(), Options{APIKey: apiKey})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer func() { _ = client.Close() }()

	if client.Model() != DefaultModel {
		t.Errorf("Expected default model %s, got %s", DefaultModel, client.Model())
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.GeminiConfig{
		APIKey:      "key",
		Model:       "gemini-test",
		Timeout:     "5s",
		MaxTokens:   512,
		Temperature: 0.2,
	})

	if opts.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", opts.Timeout)
	}
	if opts.Model != "gemini-test" || opts.MaxTokens != 512 || opts.Temperature != 0.2 {
		t.Errorf("Unexpected options: %+v", opts)
	}

	if got := OptionsFromConfig(config.GeminiConfig{}).Timeout; got != 30*time.Second {
		t.Errorf("Expected 30s default timeout, got %v", got)
	}
}

func TestResponseText(t *testing.T) {
	testCases := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		expected string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{
			"joins text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("**Mission**: "), genai.Text("Bake.")}},
			}}},
			"**Mission**: Bake.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := responseText(tc.resp); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestBuildPlanPrompt(t *testing.T) {
	prompt := BuildPlanPrompt(core.BusinessPlanInput{
		BusinessName: "Rise Bakery",
		Industry:     "Food",
		StartupCosts: "$85,000",
	})

	mustContain := []string{
		"Business Name: Rise Bakery",
		"Industry: Food",
		"Initial Investment: $85,000",
		"Location: " + core.NotSpecified,
		"IMPORTANT GUIDELINES:",
	}
	for i, section := range core.Schema {
		mustContain = append(mustContain, fmt.Sprintf("## %d. %s", i+1, section.Title))
		for _, f := range section.Fields {
			mustContain = append(mustContain, "**"+f.Labels[0]+"**:")
		}
	}

	for _, want := range mustContain {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestSanitizeResponse_PlainText(t *testing.T) {
	raw := "  **Mission Statement**: Bake.\r\n**Vision Statement**: Grow.  "
	expected := "**Mission Statement**: Bake.\n**Vision Statement**: Grow."

	if got := SanitizeResponse(raw); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestSanitizeResponse_HTML(t *testing.T) {
	raw := `<h2>Executive Summary</h2>
<p><strong>Mission Statement</strong>: To bake &amp; sell bread.</p>
<ul><li>one</li><li><em>two</em></li></ul>
<script>alert(1)</script>`

	got := SanitizeResponse(raw)

	for _, want := range []string{
		"## Executive Summary",
		"**Mission Statement**: To bake & sell bread.",
		"- one",
		"- two",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got %q", want, got)
		}
	}
	if strings.Contains(got, "<") || strings.Contains(got, "alert") {
		t.Errorf("Expected markup and scripts removed, got %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("Expected blank lines collapsed, got %q", got)
	}
}
