package reviewer

import (
	"context"
	"errors"
	"net/http"

	"github.com/povarna/generative-ai-agents/review-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/review-agent/internal/models"
)

const (
	MsgInvalidInput       = "Prompt must be a non-empty string"
	MsgPromptTooLarge     = "Prompt exceeds the maximum allowed size"
	MsgEmptyResponse      = "Empty response from the AI service."
	MsgQuotaExceeded      = "AI quota exceeded. Please try again later or upgrade your plan."
	MsgModelNotFound      = "Model not found. Please check your configuration."
	MsgServiceUnavailable = "AI service temporarily unavailable."
	MsgTimeout            = "AI service timed out. Please try again later."
	MsgUnknown            = "Something went wrong while reviewing the code."
)

// Classify maps an upstream error to a failure kind. Checks run in a fixed order:
// timeout, quota, not found, any other HTTP error status or transport failure,
// then everything else.
func Classify(err error) models.FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.KindUpstreamTimeout
	}

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return models.KindUpstreamQuotaExceeded
		case http.StatusNotFound:
			return models.KindUpstreamNotFound
		default:
			return models.KindUpstreamTransportError
		}
	}

	var transportErr *llm.TransportError
	if errors.As(err, &transportErr) {
		return models.KindUpstreamTransportError
	}

	return models.KindUpstreamUnknown
}

// Message returns the caller-safe text for a failure kind.
func Message(kind models.FailureKind) string {
	switch kind {
	case models.KindInvalidInput:
		return MsgInvalidInput
	case models.KindEmptyUpstreamResponse:
		return MsgEmptyResponse
	case models.KindUpstreamQuotaExceeded:
		return MsgQuotaExceeded
	case models.KindUpstreamNotFound:
		return MsgModelNotFound
	case models.KindUpstreamTransportError:
		return MsgServiceUnavailable
	case models.KindUpstreamTimeout:
		return MsgTimeout
	default:
		return MsgUnknown
	}
}
