package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/review-agent/internal/models"
	"github.com/povarna/generative-ai-agents/review-agent/internal/setup"
)

type stubReviewer struct {
	prompts []string
	result  models.ReviewResult
}

func (s *stubReviewer) Review(_ context.Context, req models.ReviewRequest) models.ReviewResult {
	if req.Prompt != nil {
		s.prompts = append(s.prompts, *req.Prompt)
	}
	return s.result
}

func useStub(t *testing.T, stub *stubReviewer, initErr error) {
	t.Helper()
	original := NewReviewer
	NewReviewer = func(context.Context, string, time.Duration) (Reviewer, error) {
		if initErr != nil {
			return nil, initErr
		}
		return stub, nil
	}
	t.Cleanup(func() { NewReviewer = original })
}

func TestExecute_FromFile(t *testing.T) {
	stub := &stubReviewer{result: models.Success("Looks good.")}
	useStub(t, stub, nil)

	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main"), 0644); err != nil {
		t.Fatalf("Failed to write snippet: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := execute([]string{path}, strings.NewReader(""), &stdout, &stderr)

	if code != ExitSuccess {
		t.Fatalf("Expected exit %d, got %d (stderr: %s)", ExitSuccess, code, stderr.String())
	}
	if stdout.String() != "Looks good.\n" {
		t.Errorf("Unexpected stdout %q", stdout.String())
	}
	if len(stub.prompts) != 1 || stub.prompts[0] != "package main" {
		t.Errorf("Expected file contents as prompt, got %v", stub.prompts)
	}
}

func TestExecute_FromStdin(t *testing.T) {
	stub := &stubReviewer{result: models.Success("Fine.")}
	useStub(t, stub, nil)

	var stdout, stderr bytes.Buffer
	code := execute(nil, strings.NewReader("x := 1"), &stdout, &stderr)

	if code != ExitSuccess {
		t.Fatalf("Expected exit %d, got %d", ExitSuccess, code)
	}
	if len(stub.prompts) != 1 || stub.prompts[0] != "x := 1" {
		t.Errorf("Expected stdin as prompt, got %v", stub.prompts)
	}
}

func TestExecute_ReviewFailure(t *testing.T) {
	stub := &stubReviewer{result: models.Failure(models.KindUpstreamQuotaExceeded, "AI quota exceeded. Please try again later or upgrade your plan.")}
	useStub(t, stub, nil)

	var stdout, stderr bytes.Buffer
	code := execute(nil, strings.NewReader("x := 1"), &stdout, &stderr)

	if code != ExitReviewFailed {
		t.Fatalf("Expected exit %d, got %d", ExitReviewFailed, code)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected empty stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "AI quota exceeded") {
		t.Errorf("Expected failure message on stderr, got %q", stderr.String())
	}
}

func TestExecute_JSONOutput(t *testing.T) {
	stub := &stubReviewer{result: models.Failure(models.KindInvalidInput, "Prompt must be a non-empty string")}
	useStub(t, stub, nil)

	var stdout, stderr bytes.Buffer
	code := execute([]string{"--json"}, strings.NewReader(""), &stdout, &stderr)

	if code != ExitReviewFailed {
		t.Fatalf("Expected exit %d, got %d", ExitReviewFailed, code)
	}

	var response models.ReviewResponse
	if err := json.Unmarshal(stdout.Bytes(), &response); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", stdout.String(), err)
	}
	if response.Kind != models.KindInvalidInput {
		t.Errorf("Expected kind InvalidInput, got %s", response.Kind)
	}
}

func TestExecute_InitError(t *testing.T) {
	useStub(t, nil, errors.New("missing credential: GOOGLE_GEMINI_KEY"))

	var stdout, stderr bytes.Buffer
	code := execute(nil, strings.NewReader("x"), &stdout, &stderr)

	if code != ExitUsageError {
		t.Fatalf("Expected exit %d, got %d", ExitUsageError, code)
	}
	if !strings.Contains(stderr.String(), "GOOGLE_GEMINI_KEY") {
		t.Errorf("Expected init error on stderr, got %q", stderr.String())
	}
}

func TestExecute_MissingFile(t *testing.T) {
	useStub(t, &stubReviewer{}, nil)

	var stdout, stderr bytes.Buffer
	code := execute([]string{"/nonexistent/file.go"}, strings.NewReader(""), &stdout, &stderr)

	if code != ExitUsageError {
		t.Fatalf("Expected exit %d, got %d", ExitUsageError, code)
	}
}

func TestExecute_TooManyArgs(t *testing.T) {
	useStub(t, &stubReviewer{}, nil)

	var stdout, stderr bytes.Buffer
	code := execute([]string{"a.go", "b.go"}, strings.NewReader(""), &stdout, &stderr)

	if code != ExitUsageError {
		t.Fatalf("Expected exit %d, got %d", ExitUsageError, code)
	}
}

func TestExecute_StdinTooLarge(t *testing.T) {
	stub := &stubReviewer{result: models.Success("unused")}
	useStub(t, stub, nil)

	input := strings.Repeat("a", MaxInputBytes+1)

	var stdout, stderr bytes.Buffer
	code := execute(nil, strings.NewReader(input), &stdout, &stderr)

	if code != ExitUsageError {
		t.Fatalf("Expected exit %d, got %d", ExitUsageError, code)
	}
	if len(stub.prompts) != 0 {
		t.Error("Expected oversized input to be rejected before review")
	}
	if !strings.Contains(stderr.String(), "input exceeds") {
		t.Errorf("Expected size error on stderr, got %q", stderr.String())
	}
}

func TestExecute_FileTooLarge(t *testing.T) {
	stub := &stubReviewer{result: models.Success("unused")}
	useStub(t, stub, nil)

	path := filepath.Join(t.TempDir(), "big.go")
	if err := os.WriteFile(path, bytes.Repeat([]byte("a"), MaxInputBytes+1), 0644); err != nil {
		t.Fatalf("Failed to write snippet: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := execute([]string{path}, strings.NewReader(""), &stdout, &stderr)

	if code != ExitUsageError {
		t.Fatalf("Expected exit %d, got %d", ExitUsageError, code)
	}
	if len(stub.prompts) != 0 {
		t.Error("Expected oversized file to be rejected before review")
	}
}

func TestApplyOverrides_LeavesEnvironmentUntouched(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GOOGLE_GEMINI_KEY", "")
	t.Setenv("OPEN_AI_KEY", "sk-test")
	t.Setenv("UPSTREAM_TIMEOUT", "")

	cfg := setup.ConfigFromEnv()
	applyOverrides(cfg, "OpenAI", 5*time.Second)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected overridden config to validate, got: %v", err)
	}
	if cfg.Provider != setup.ProviderOpenAI {
		t.Errorf("Expected provider openai, got %s", cfg.Provider)
	}
	if cfg.UpstreamTimeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.UpstreamTimeout)
	}
	if got := os.Getenv("LLM_PROVIDER"); got != "gemini" {
		t.Errorf("Expected LLM_PROVIDER to stay gemini, got %q", got)
	}
	if got := os.Getenv("UPSTREAM_TIMEOUT"); got != "" {
		t.Errorf("Expected UPSTREAM_TIMEOUT to stay unset, got %q", got)
	}
}

func TestApplyOverrides_EmptyFlagsKeepConfig(t *testing.T) {
	cfg := &setup.Config{Provider: setup.ProviderBedrock, UpstreamTimeout: time.Minute}

	applyOverrides(cfg, "", 0)

	if cfg.Provider != setup.ProviderBedrock || cfg.UpstreamTimeout != time.Minute {
		t.Errorf("Expected config unchanged, got %+v", cfg)
	}
}
