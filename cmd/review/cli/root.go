package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/review-agent/internal/api"
	"github.com/povarna/generative-ai-agents/review-agent/internal/models"
	"github.com/povarna/generative-ai-agents/review-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/review-agent/internal/setup/logger"
	"github.com/spf13/cobra"
)

// MaxInputBytes matches the HTTP body cap. Larger input is rejected, never truncated.
const MaxInputBytes = api.MaxBodyBytes

var ErrInputTooLarge = fmt.Errorf("input exceeds %d bytes", MaxInputBytes)

const (
	ExitSuccess      = 0
	ExitReviewFailed = 1
	ExitUsageError   = 2
)

// Reviewer is satisfied by reviewer.Gateway.
type Reviewer interface {
	Review(ctx context.Context, req models.ReviewRequest) models.ReviewResult
}

// NewReviewer builds the reviewer from the environment. Tests replace it.
var NewReviewer = func(ctx context.Context, provider string, timeout time.Duration) (Reviewer, error) {
	_ = godotenv.Load()

	cfg := setup.ConfigFromEnv()
	applyOverrides(cfg, provider, timeout)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewConsole(cfg.LogLevel)
	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		return nil, err
	}
	return deps.Gateway, nil
}

func applyOverrides(cfg *setup.Config, provider string, timeout time.Duration) {
	if provider != "" {
		cfg.Provider = strings.ToLower(provider)
	}
	if timeout > 0 {
		cfg.UpstreamTimeout = timeout
	}
}

var (
	flagProvider string
	flagTimeout  time.Duration
	flagJSON     bool
)

// exitCode is set by the review command to control the process exit code.
var exitCode = ExitSuccess

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "review [file]",
		Short:         "Review a code snippet from a file or stdin",
		Long:          "review sends a code snippet to the configured model once and prints the feedback.",
		Version:       api.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReview,
	}

	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (gemini, bedrock, openai); overrides LLM_PROVIDER")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "upstream timeout; overrides UPSTREAM_TIMEOUT")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "print the result as JSON")

	return rootCmd
}

// Run executes the root command and returns an exit code.
func Run() int {
	return execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	exitCode = ExitSuccess
	flagProvider, flagTimeout, flagJSON = "", 0, false

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitUsageError
	}

	return exitCode
}

func runReview(cmd *cobra.Command, args []string) error {
	prompt, err := readPrompt(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	reviewer, err := NewReviewer(cmd.Context(), flagProvider, flagTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize reviewer: %w", err)
	}

	result := reviewer.Review(cmd.Context(), models.NewReviewRequest(prompt))

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Response()); err != nil {
			return err
		}
	} else if result.OK {
		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	}

	if !result.OK {
		if !flagJSON {
			fmt.Fprintln(cmd.ErrOrStderr(), result.Message)
		}
		exitCode = ExitReviewFailed
	}

	return nil
}

func readPrompt(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		info, err := os.Stat(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		if info.Size() > MaxInputBytes {
			return "", fmt.Errorf("%s: %w", args[0], ErrInputTooLarge)
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(io.LimitReader(stdin, MaxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) > MaxInputBytes {
		return "", ErrInputTooLarge
	}
	return string(data), nil
}
