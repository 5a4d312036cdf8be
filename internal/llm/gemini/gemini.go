package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/povarna/generative-ai-agents/review-agent/internal/llm"
	"google.golang.org/genai"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(request.Temperature)),
	}
	if request.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(request.SystemInstruction, genai.RoleUser)
	}
	if request.MaxTokens > 0 {
		config.MaxOutputTokens = int32(request.MaxTokens)
	}

	output, err := c.client.Models.GenerateContent(ctx, c.modelID, genai.Text(request.Prompt), config)
	if err != nil {
		return nil, normalizeError(err)
	}

	if output == nil {
		return &llm.LLMResponse{}, nil
	}

	var stopReason string
	if len(output.Candidates) > 0 && output.Candidates[0] != nil {
		stopReason = string(output.Candidates[0].FinishReason)
	}

	return &llm.LLMResponse{
		Content:    output.Text(),
		StopReason: stopReason,
	}, nil
}

func normalizeError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.APIError{
			Provider:   providerName,
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	return llm.WrapTransport(providerName, fmt.Errorf("unable to invoke gemini model: %w", err))
}
