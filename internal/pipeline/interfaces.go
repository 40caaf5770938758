package pipeline

import "context"

// Generator produces raw business-plan text for a prompt. Implementations
// should honor ctx cancellation; the pipeline enforces its own deadline
// regardless.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
