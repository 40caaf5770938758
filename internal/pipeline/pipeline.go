package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"bizplan/internal/core"
	"bizplan/internal/llm"
	"bizplan/internal/logger"
	"bizplan/internal/observability"
	"bizplan/internal/planner"
)

// Result messages shown to the caller.
const (
	MessageGenerated = "Generated with AI"
	MessageBasic     = "Created basic business plan"
	MessageProcessed = "Processed supplied response"
)

const (
	unavailablePrefix = "AI generation unavailable: "
	failedPrefix      = "AI generation failed: "
	defaultGenTimeout = 8 * time.Second
)

// ErrGenerationDisabled is reported when generation.enabled is false.
var ErrGenerationDisabled = errors.New("generation is disabled in configuration")

// Pipeline turns a submitted form into a normalized business plan
type Pipeline struct {
	generator   Generator
	unavailable error
	filler      *planner.Filler
	config      *Config
	closers     []func() error

	newID func() string
	now   func() time.Time
}

// Config holds pipeline configuration
type Config struct {
	GenerationEnabled bool
	// GenerationTimeout bounds the model call. The seeded skeleton is
	// returned when it expires.
	GenerationTimeout time.Duration
}

// DefaultConfig returns the generation defaults
func DefaultConfig() *Config {
	return &Config{
		GenerationEnabled: true,
		GenerationTimeout: defaultGenTimeout,
	}
}

// NewPipeline creates a pipeline around generator. A nil generator makes
// every AI request fall back to the seeded skeleton.
func NewPipeline(generator Generator, config *Config) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}
	if config.GenerationTimeout <= 0 {
		config.GenerationTimeout = defaultGenTimeout
	}

	p := &Pipeline{
		generator: generator,
		filler:    planner.NewFiller(nil),
		config:    config,
		newID:     uuid.NewString,
		now:       time.Now,
	}
	switch {
	case !config.GenerationEnabled:
		p.unavailable = ErrGenerationDisabled
	case generator == nil:
		p.unavailable = llm.ErrNotConfigured
	}
	return p
}

// Available reports whether AI generation can be attempted, and why not.
func (p *Pipeline) Available() (bool, error) {
	return p.unavailable == nil, p.unavailable
}

// Close releases resources owned by the pipeline, such as the model client.
func (p *Pipeline) Close() error {
	var errs []error
	for _, c := range p.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Generate builds the plan for in. It never fails: gateway problems are
// reported through the result's Message and Error fields and the plan
// falls back to its seeded values plus sentinels.
func (p *Pipeline) Generate(ctx context.Context, in core.BusinessPlanInput) *core.PlanResult {
	result := p.newResult(in)
	plan := planner.BuildSkeleton(in)
	log := logger.Get().With("plan_id", result.ID, "business_name", in.BusinessName)

	switch {
	case !in.WantsAI():
		result.Message = MessageBasic
		observability.RecordGeneration(observability.OutcomeBasic, 0)

	case p.unavailable != nil:
		result.Message = unavailablePrefix + p.unavailable.Error()
		result.Error = p.unavailable.Error()
		observability.RecordGeneration(observability.OutcomeUnavailable, 0)
		log.Warn("AI generation unavailable", "reason", p.unavailable.Error())

	default:
		start := p.now()
		raw, err := p.callGenerator(ctx, llm.BuildPlanPrompt(in))
		elapsed := p.now().Sub(start)
		if err != nil {
			result.Message = failedPrefix + err.Error()
			result.Error = err.Error()
			observability.RecordGeneration(observability.OutcomeFailed, elapsed)
			log.Error("AI generation failed", "error", err.Error(), "duration", elapsed)
			break
		}

		p.fill(plan, raw, log)
		result.GeneratedWithAI = true
		result.RawResponse = raw
		result.Message = MessageGenerated
		observability.RecordGeneration(observability.OutcomeAI, elapsed)
		log.Info("Business plan generated", "duration", elapsed, "raw_length", len(raw))
	}

	planner.Normalize(plan)
	result.Data = plan
	return result
}

// Process runs the core on a response obtained elsewhere, skipping the
// gateway. An empty response yields the seeded skeleton.
func (p *Pipeline) Process(in core.BusinessPlanInput, raw string) *core.PlanResult {
	result := p.newResult(in)
	plan := planner.BuildSkeleton(in)
	raw = llm.SanitizeResponse(raw)

	result.Message = MessageBasic
	if raw != "" {
		p.fill(plan, raw, logger.Get().With("plan_id", result.ID))
		result.RawResponse = raw
		result.GeneratedWithAI = true
		result.Message = MessageProcessed
	}

	planner.Normalize(plan)
	result.Data = plan
	return result
}

func (p *Pipeline) newResult(in core.BusinessPlanInput) *core.PlanResult {
	return &core.PlanResult{
		ID:           p.newID(),
		BusinessName: in.BusinessName,
		Industry:     in.Industry,
		BusinessType: in.BusinessType,
		Location:     in.Location,
		CreatedAt:    p.now().UTC(),
	}
}

func (p *Pipeline) fill(plan *core.BusinessPlan, raw string, log *slog.Logger) {
	report := p.filler.Fill(plan, raw)
	observability.RecordExtractions(report.Strategies)
	observability.RecordSectionFallbacks(report.SectionFallback)
	log.Debug("Plan filled",
		"strategies", report.Strategies,
		"section_labeled", report.SectionLabeled,
		"section_fallback", report.SectionFallback,
		"unfilled", report.Unfilled)
}

type generation struct {
	text string
	err  error
}

// callGenerator runs the gateway under the configured deadline. The call
// runs on its own goroutine so a generator that ignores ctx cannot hold
// the request past the deadline.
func (p *Pipeline) callGenerator(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.GenerationTimeout)
	defer cancel()

	done := make(chan generation, 1)
	go func() {
		text, err := p.generator.Generate(ctx, prompt)
		done <- generation{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("generation timed out after %s", p.config.GenerationTimeout)
		}
		return "", ctx.Err()
	case g := <-done:
		if g.err != nil {
			return "", g.err
		}
		if strings.TrimSpace(g.text) == "" {
			return "", llm.ErrEmptyResponse
		}
		return g.text, nil
	}
}
