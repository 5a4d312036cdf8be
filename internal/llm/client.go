package llm

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks . LLMClient

// LLMClient is an interface for invoking LLM models
// This allows mocking in tests without making real API calls
type LLMClient interface {
	InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error)
	Provider() string
}
