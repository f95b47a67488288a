package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/quartetlab/quartet/internal/domain"
	"github.com/quartetlab/quartet/internal/ports"
)

// Shared validator instance to reduce allocations.
var requestValidator = validator.New()

// GenerateRequest is one four-condition generation request. Profile is
// optional: when nil the engine loads the participant's latest stored
// score, and a participant with no score gets the midpoint mirror.
type GenerateRequest struct {
	ParticipantID string `validate:"required"`
	TaskID        string `validate:"required"`
	Style         string
	TaskPrompt    string `validate:"required"`
	Profile       *domain.TraitProfile
}

// EngineConfig carries the engine's tunables.
type EngineConfig struct {
	// CacheTTL bounds how long a generation result satisfies repeat
	// requests. Zero caches without expiry.
	CacheTTL time.Duration

	// Options is forwarded to every backend call.
	Options ports.GenerationOptions
}

// Engine orchestrates the study's core operation: derive four personas,
// fan out four concurrent generations, and return results in fixed
// condition order.
type Engine struct {
	llm     ports.LLMClient
	cache   ports.CacheStore
	scrub   ports.Scrubber
	scores  ports.ScoreStore
	prompts *PromptLibrary
	metrics ports.MetricsCollector
	config  EngineConfig

	newID func() string
}

// NewEngine wires an engine from its collaborators. The scrubber and
// metrics collector may be nil; scores may be nil when profiles always
// arrive inline with the request.
func NewEngine(
	llm ports.LLMClient,
	cache ports.CacheStore,
	scrub ports.Scrubber,
	scores ports.ScoreStore,
	prompts *PromptLibrary,
	metrics ports.MetricsCollector,
	config EngineConfig,
) (*Engine, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm client cannot be nil")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache store cannot be nil")
	}
	if prompts == nil {
		prompts = NewPromptLibrary(PromptConfig{})
	}
	return &Engine{
		llm:     llm,
		cache:   cache,
		scrub:   scrub,
		scores:  scores,
		prompts: prompts,
		metrics: metrics,
		config:  config,
		newID:   uuid.NewString,
	}, nil
}

// CacheKey is the idempotency key for one (participant, task,
// condition) triple.
func CacheKey(participantID, taskID string, condition domain.Condition) string {
	return fmt.Sprintf("resp:%s:%s:%s", participantID, taskID, condition)
}

// GenerateFour runs the four-condition fan-out and returns results in
// canonical condition order regardless of completion order. Any single
// unit's unrecovered failure fails the whole batch; the caller receives
// no partial results.
func (e *Engine) GenerateFour(ctx context.Context, req GenerateRequest) ([4]domain.GenerationResult, error) {
	var results [4]domain.GenerationResult

	if err := requestValidator.Struct(req); err != nil {
		ve := domain.NewValidationError("generate request")
		ve.AddError(err.Error())
		return results, ve
	}

	profile := req.Profile
	if profile == nil && e.scores != nil {
		loaded, err := e.scores.LatestScore(ctx, req.ParticipantID)
		if err != nil {
			return results, fmt.Errorf("failed to load trait profile: %w", err)
		}
		profile = loaded
	}
	personas := domain.DerivePersonas(profile, e.prompts.CreativePersona())

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for i, condition := range domain.ConditionOrder {
		idx, cond, persona := i, condition, personas[i]
		g.Go(func() error {
			result, err := e.generateOne(gctx, req, cond, persona)
			if err != nil {
				return err
			}
			results[idx] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	if e.metrics != nil {
		e.metrics.RecordLatency("generate_four", time.Since(start), nil)
	}
	return results, nil
}

// generateOne serves a single condition: cache hit, or generate, scrub,
// and cache.
func (e *Engine) generateOne(ctx context.Context, req GenerateRequest, condition domain.Condition, persona domain.PersonaDefinition) (domain.GenerationResult, error) {
	key := CacheKey(req.ParticipantID, req.TaskID, condition)

	cached, found, err := e.cache.Get(ctx, key)
	if err != nil {
		// A failing cache store degrades to a forced miss rather than
		// failing the request.
		e.countCacheEvent("forced_miss")
	} else if found {
		var result domain.GenerationResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			e.countCacheEvent("hit")
			result.FromCache = true
			return result, nil
		}
		// A corrupt entry reads as a miss and is overwritten below.
		e.countCacheEvent("forced_miss")
	} else {
		e.countCacheEvent("miss")
	}

	systemPrompt := e.prompts.SystemPrompt(req.Style, condition)
	userPrompt, err := e.prompts.UserPrompt(condition, persona, req.TaskPrompt)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	start := time.Now()
	out, err := e.llm.Generate(ctx, systemPrompt, userPrompt, e.config.Options)
	if err != nil {
		return domain.GenerationResult{}, &ports.GenerationError{
			Condition: condition,
			Model:     e.llm.Model(),
			Err:       err,
		}
	}
	latency := time.Since(start).Milliseconds()

	text := out.Text
	if e.scrub != nil {
		text = e.scrub.Scrub(text)
	}

	result := domain.GenerationResult{
		Condition:    condition,
		ResponseID:   e.newID(),
		Text:         text,
		Model:        out.Model,
		TokensIn:     out.TokensIn,
		TokensOut:    out.TokensOut,
		LatencyMS:    latency,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	}

	// A cancelled request must not leave partial cache writes behind.
	if ctx.Err() == nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := e.cache.Set(ctx, key, string(payload), e.config.CacheTTL); err != nil {
				e.countCacheEvent("write_failure")
			}
		}
	}

	return result, nil
}

func (e *Engine) countCacheEvent(event string) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordCounter("cache_events_total", 1, map[string]string{"event": event})
}

// ResetCache drops every cached generation result. Administrative use
// only.
func (e *Engine) ResetCache(ctx context.Context) error {
	return e.cache.Clear(ctx)
}
