package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"bizplan/internal/config"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

var (
	// ErrNotConfigured is returned when no usable API key is available.
	ErrNotConfigured = errors.New("gemini API key is not configured")
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// Options configures a Client.
type Options struct {
	APIKey      string
	Model       string
	MaxTokens   int32
	Temperature float32
	// Timeout caps a single Generate call. Zero means no cap beyond ctx.
	Timeout time.Duration
}

// OptionsFromConfig maps the ai.gemini config block onto Options.
func OptionsFromConfig(cfg config.GeminiConfig) Options {
	return Options{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     config.Duration(cfg.Timeout, 30*time.Second),
	}
}

// Client generates business-plan text with Gemini.
type Client struct {
	modelName   string
	maxTokens   int32
	temperature float32
	timeout     time.Duration
	gClient     *genai.Client
}

// NewClient creates a Gemini client. It returns ErrNotConfigured when
// opts carries no API key.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	gClient, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName:   opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		gClient:     gClient,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.modelName }

// Generate sends prompt to the model and returns its sanitized text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := c.gClient.GenerativeModel(c.modelName)
	model.SetTemperature(c.temperature)
	if c.maxTokens > 0 {
		model.SetMaxOutputTokens(c.maxTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := SanitizeResponse(responseText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	return c.gClient.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
