package models

import (
	"bytes"
	"encoding/json"
)

type FailureKind string

const (
	KindInvalidInput           FailureKind = "InvalidInput"
	KindEmptyUpstreamResponse  FailureKind = "EmptyUpstreamResponse"
	KindUpstreamQuotaExceeded  FailureKind = "UpstreamQuotaExceeded"
	KindUpstreamNotFound       FailureKind = "UpstreamNotFound"
	KindUpstreamTransportError FailureKind = "UpstreamTransportError"
	KindUpstreamTimeout        FailureKind = "UpstreamTimeout"
	KindUpstreamUnknown        FailureKind = "UpstreamUnknown"
)

// Input message

// ReviewRequest carries the snippet or question to review.
// Prompt is nil when the "prompt" field is missing, null or not a JSON string.
type ReviewRequest struct {
	Prompt *string `json:"prompt" description:"Code snippet or question to review"`
}

// UnmarshalJSON accepts any JSON value for "prompt" and keeps it only when it is a string,
// so that non-text prompts surface as invalid input instead of a decode error.
func (r *ReviewRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Prompt = nil
	trimmed := bytes.TrimSpace(raw.Prompt)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return nil
	}

	var prompt string
	if err := json.Unmarshal(trimmed, &prompt); err != nil {
		return err
	}
	r.Prompt = &prompt
	return nil
}

// NewReviewRequest wraps a plain text prompt.
func NewReviewRequest(prompt string) ReviewRequest {
	return ReviewRequest{Prompt: &prompt}
}

// ReviewResult is either a success carrying the review text or a failure carrying
// a kind from the taxonomy and a caller-safe message.
type ReviewResult struct {
	OK      bool        `json:"ok" jsonschema:"true when a review was produced"`
	Text    string      `json:"text,omitempty" jsonschema:"generated review feedback"`
	Kind    FailureKind `json:"kind,omitempty" jsonschema:"failure kind when ok is false"`
	Message string      `json:"message,omitempty" jsonschema:"caller-safe failure message"`
}

func Success(text string) ReviewResult {
	return ReviewResult{OK: true, Text: text}
}

func Failure(kind FailureKind, message string) ReviewResult {
	return ReviewResult{Kind: kind, Message: message}
}

// Output message returned by the HTTP API when JSON is requested
type ReviewResponse struct {
	Review string      `json:"review,omitempty" description:"Generated review feedback"`
	Error  string      `json:"error,omitempty" description:"Caller-safe failure message"`
	Kind   FailureKind `json:"kind,omitempty" description:"Failure kind"`
}

func (r ReviewResult) Response() ReviewResponse {
	if r.OK {
		return ReviewResponse{Review: r.Text}
	}
	return ReviewResponse{Error: r.Message, Kind: r.Kind}
}
