package reviewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/review-agent/internal/config"
	"github.com/povarna/generative-ai-agents/review-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/review-agent/internal/metrics"
	"github.com/povarna/generative-ai-agents/review-agent/internal/models"
	"github.com/rs/zerolog"
)

const DefaultUpstreamTimeout = 60 * time.Second

// Gateway validates a prompt, sends it to the configured model once and turns
// every outcome into a ReviewResult. It is safe for concurrent use.
type Gateway struct {
	client            llm.LLMClient
	systemInstruction string
	modelConfig       config.ModelConfig
	maxPromptBytes    int
	timeout           time.Duration
	logger            *zerolog.Logger
}

func NewGateway(client llm.LLMClient, cfg *config.ReviewerConfig, timeout time.Duration, logger *zerolog.Logger) *Gateway {
	if cfg == nil {
		cfg = config.DefaultReviewerConfig()
	}
	if timeout <= 0 {
		timeout = DefaultUpstreamTimeout
	}

	return &Gateway{
		client:            client,
		systemInstruction: cfg.Reviewer.SystemInstruction,
		modelConfig:       cfg.Reviewer.Model,
		maxPromptBytes:    cfg.Reviewer.MaxPromptBytes,
		timeout:           timeout,
		logger:            logger,
	}
}

func (g *Gateway) Provider() string {
	return g.client.Provider()
}

// ReviewText reviews a plain text prompt.
func (g *Gateway) ReviewText(ctx context.Context, prompt string) models.ReviewResult {
	return g.Review(ctx, models.NewReviewRequest(prompt))
}

func (g *Gateway) Review(ctx context.Context, req models.ReviewRequest) (result models.ReviewResult) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error().Str("panic", fmt.Sprint(r)).Msg("review panicked")
			result = models.Failure(models.KindUpstreamUnknown, MsgUnknown)
		}
		g.record(result)
	}()

	if req.Prompt == nil || strings.TrimSpace(*req.Prompt) == "" {
		g.logger.Warn().Msg("rejected review request with empty prompt")
		return models.Failure(models.KindInvalidInput, MsgInvalidInput)
	}

	prompt := *req.Prompt
	if g.maxPromptBytes > 0 && len(prompt) > g.maxPromptBytes {
		g.logger.Warn().
			Int("size", len(prompt)).
			Int("limit", g.maxPromptBytes).
			Msg("rejected oversized review request")
		return models.Failure(models.KindInvalidInput, MsgPromptTooLarge)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	request := llm.LLMRequest{
		SystemInstruction: g.systemInstruction,
		Prompt:            prompt,
		MaxTokens:         g.modelConfig.MaxTokens,
		Temperature:       g.modelConfig.Temperature,
	}

	start := time.Now()
	response, err := g.client.InvokeModel(ctx, request)
	metrics.ObserveUpstream(g.client.Provider(), time.Since(start))

	if err != nil {
		kind := Classify(err)
		g.logger.Error().
			Err(err).
			Str("provider", g.client.Provider()).
			Str("kind", string(kind)).
			Msg("review failed")
		return models.Failure(kind, Message(kind))
	}

	if response == nil || strings.TrimSpace(response.Content) == "" {
		g.logger.Error().
			Str("provider", g.client.Provider()).
			Msg("upstream returned no review text")
		return models.Failure(models.KindEmptyUpstreamResponse, MsgEmptyResponse)
	}

	g.logger.Info().
		Str("provider", g.client.Provider()).
		Str("stopReason", response.StopReason).
		Str("review", response.Content).
		Msg("review generated")

	return models.Success(response.Content)
}

func (g *Gateway) record(result models.ReviewResult) {
	if result.OK {
		metrics.ObserveReview("ok")
		return
	}
	metrics.ObserveReview(string(result.Kind))
}
