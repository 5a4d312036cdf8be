package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const providerName = "gemini"

const DefaultModelID = "gemini-2.5-flash-lite"

type Client struct {
	client  *genai.Client
	modelID string
}

func NewClient(ctx context.Context, apiKey string, modelID string) (*Client, error) {
	return newClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, modelID)
}

func newClient(ctx context.Context, cfg *genai.ClientConfig, modelID string) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if modelID == "" {
		modelID = DefaultModelID
	}

	genaiClient, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create gemini client: %w", err)
	}

	return &Client{
		client:  genaiClient,
		modelID: modelID,
	}, nil
}

func (c *Client) Provider() string {
	return providerName
}

func (c *Client) ModelID() string {
	return c.modelID
}
