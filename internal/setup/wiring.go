package setup

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/review-agent/internal/config"
	"github.com/povarna/generative-ai-agents/review-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/review-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/review-agent/internal/llm/gemini"
	"github.com/povarna/generative-ai-agents/review-agent/internal/llm/gpt"
	"github.com/povarna/generative-ai-agents/review-agent/internal/reviewer"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Gateway *reviewer.Gateway
	Config  *Config
	Logger  *zerolog.Logger
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg.Provider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	// Load reviewer persona and model parameters from YAML
	reviewerConfig, err := config.LoadReviewerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load reviewer config: %w", err)
	}

	gateway := reviewer.NewGateway(llmClient, reviewerConfig, cfg.UpstreamTimeout, logger)

	logger.Info().
		Str("provider", llmClient.Provider()).
		Dur("upstreamTimeout", cfg.UpstreamTimeout).
		Msg("review gateway ready")

	return &Dependencies{
		Gateway: gateway,
		Config:  cfg,
		Logger:  logger,
	}, nil
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case ProviderOpenAI:
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	case ProviderGemini:
		return gemini.NewClient(ctx, cfg.GeminiKey, cfg.GeminiModelID)
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}
