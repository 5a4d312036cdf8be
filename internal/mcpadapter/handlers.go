package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/review-agent/internal/models"
)

const ToolReviewCode = "review_code"

// Reviewer is satisfied by reviewer.Gateway.
type Reviewer interface {
	Review(ctx context.Context, req models.ReviewRequest) models.ReviewResult
}

// ReviewInput is the MCP tool input schema (matches the HTTP body field name).
type ReviewInput struct {
	Prompt string `json:"prompt" jsonschema:"code snippet or question to review"`
}

// NewServer returns an MCP server exposing the review_code tool.
func NewServer(reviewer Reviewer, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "review-agent",
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolReviewCode,
		Description: "Review a code snippet for quality, security, performance and maintainability issues",
	}, NewReviewHandler(reviewer))

	return server
}

// NewReviewHandler returns a tool handler that uses the given reviewer.
// Pass the returned function to mcp.AddTool.
func NewReviewHandler(reviewer Reviewer) func(context.Context, *mcp.CallToolRequest, ReviewInput) (*mcp.CallToolResult, models.ReviewResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReviewInput) (*mcp.CallToolResult, models.ReviewResult, error) {
		return ReviewCode(ctx, reviewer, input)
	}
}

// ReviewCode runs one review. Failures are reported as a tool error carrying the
// caller-safe message, not as a protocol error.
func ReviewCode(ctx context.Context, reviewer Reviewer, input ReviewInput) (*mcp.CallToolResult, models.ReviewResult, error) {
	result := reviewer.Review(ctx, models.NewReviewRequest(input.Prompt))

	if !result.OK {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: result.Message}},
		}, result, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: result.Text}},
	}, result, nil
}
