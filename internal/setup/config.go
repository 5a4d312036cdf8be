package setup

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"
	ProviderOpenAI  = "openai"
)

var ErrMissingCredential = errors.New("missing credential")

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:3000",
}

type Config struct {
	Provider           string        `env:"LLM_PROVIDER" validate:"oneof=gemini bedrock openai"`
	GeminiKey          string        `env:"GOOGLE_GEMINI_KEY" validate:"required_if=Provider gemini"`
	GeminiModelID      string        `env:"GEMINI_MODEL_ID"`
	AWSRegion          string        `env:"AWS_REGION" validate:"required_if=Provider bedrock"`
	ClaudeModelID      string        `env:"CLAUDE_MODEL_ID" validate:"required_if=Provider bedrock"`
	OpenAIKey          string        `env:"OPEN_AI_KEY" validate:"required_if=Provider openai"`
	OpenAIModelID      string        `env:"OPEN_AI_MODEL_ID"`
	UpstreamTimeout    time.Duration `env:"UPSTREAM_TIMEOUT" validate:"gt=0"`
	Port               string        `env:"REVIEW_API_PORT" validate:"required,numeric"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" validate:"dive,url"`
	LogLevel           string        `env:"LOG_LEVEL"`
}

// LoadConfig reads the process configuration from the environment and validates it.
// A missing credential for the selected provider is reported as ErrMissingCredential.
func LoadConfig() (*Config, error) {
	cfg := ConfigFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFromEnv reads the environment without validating, so callers can apply
// overrides before calling Validate.
func ConfigFromEnv() *Config {
	return &Config{
		Provider:           strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GeminiKey:          getEnv("GOOGLE_GEMINI_KEY", ""),
		GeminiModelID:      getEnv("GEMINI_MODEL_ID", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:      getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:          getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:      getEnv("OPEN_AI_MODEL_ID", ""),
		UpstreamTimeout:    getEnvDuration("UPSTREAM_TIMEOUT", 60*time.Second),
		Port:               getEnv("REVIEW_API_PORT", "3000"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("env")
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	// Report the first problem only, credentials take priority
	for _, fe := range verrs {
		if fe.Tag() == "required_if" {
			return fmt.Errorf("%w: %s must be set when LLM_PROVIDER=%s", ErrMissingCredential, fe.Field(), c.Provider)
		}
	}

	fe := verrs[0]
	return fmt.Errorf("invalid %s: %q fails %s", fe.Field(), fmt.Sprint(fe.Value()), fe.Tag())
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}

	if len(values) == 0 {
		return defaultValue
	}
	return values
}
