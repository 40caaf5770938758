package pipeline

import (
	"context"

	"bizplan/internal/config"
	"bizplan/internal/extract"
	"bizplan/internal/llm"
	"bizplan/internal/logger"
	"bizplan/internal/planner"
)

// Builder helps construct a fully configured Pipeline
type Builder struct {
	generator   Generator
	unavailable error
	config      *Config
	extractor   *extract.Extractor
	closers     []func() error
}

// NewBuilder creates a new pipeline builder with default settings
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithGenerator sets the model gateway
func (b *Builder) WithGenerator(g Generator) *Builder {
	b.generator = g
	return b
}

// WithConfig sets the pipeline configuration
func (b *Builder) WithConfig(c *Config) *Builder {
	b.config = c
	return b
}

// WithExtractor replaces the default extraction strategies
func (b *Builder) WithExtractor(e *extract.Extractor) *Builder {
	b.extractor = e
	return b
}

// FromAppConfig applies the generation settings and, when a usable key is
// configured, creates the Gemini client. A missing key is not an error:
// the pipeline reports generation as unavailable instead.
func (b *Builder) FromAppConfig(ctx context.Context, cfg *config.Config) *Builder {
	b.config = &Config{
		GenerationEnabled: cfg.Generation.Enabled,
		GenerationTimeout: config.Duration(cfg.Generation.Timeout, defaultGenTimeout),
	}
	if !cfg.Generation.Enabled {
		return b
	}
	if !cfg.AI.Gemini.HasValidKey() {
		b.unavailable = llm.ErrNotConfigured
		logger.Warn("Gemini API key not configured; plans will contain seeded fields only")
		return b
	}

	client, err := llm.NewClient(ctx, llm.OptionsFromConfig(cfg.AI.Gemini))
	if err != nil {
		b.unavailable = err
		logger.Error("Failed to create Gemini client", err)
		return b
	}
	logger.Info("Gemini client ready", "model", client.Model(), "timeout", b.config.GenerationTimeout.String())
	b.generator = client
	b.closers = append(b.closers, client.Close)
	return b
}

// Build constructs the Pipeline
func (b *Builder) Build() *Pipeline {
	p := NewPipeline(b.generator, b.config)
	if b.unavailable != nil && p.unavailable == nil {
		p.generator = nil
		p.unavailable = b.unavailable
	}
	if b.extractor != nil {
		p.filler = planner.NewFiller(b.extractor)
	}
	p.closers = append(p.closers, b.closers...)
	return p
}
