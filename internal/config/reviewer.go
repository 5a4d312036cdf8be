package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/reviewer.yaml"

// LoadReviewerConfig reads the reviewer YAML from REVIEWER_CONFIG_PATH.
// When the variable is unset and the default file does not exist, the built-in persona is used.
func LoadReviewerConfig() (*ReviewerConfig, error) {
	path := os.Getenv("REVIEWER_CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultReviewerConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg ReviewerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *ReviewerConfig) {
	if strings.TrimSpace(cfg.Reviewer.SystemInstruction) == "" {
		cfg.Reviewer.SystemInstruction = DefaultSystemInstruction
	}
	if cfg.Reviewer.Model.MaxTokens == 0 {
		cfg.Reviewer.Model.MaxTokens = defaultMaxTokens
	}
	if cfg.Reviewer.MaxPromptBytes == 0 {
		cfg.Reviewer.MaxPromptBytes = defaultMaxPromptBytes
	}
}

func (c *ReviewerConfig) Validate() error {
	if c.Reviewer.Model.MaxTokens < 0 {
		return fmt.Errorf("negative max_tokens: %d", c.Reviewer.Model.MaxTokens)
	}
	if c.Reviewer.Model.Temperature < 0.0 || c.Reviewer.Model.Temperature > 2.0 {
		return fmt.Errorf("invalid temperature: %f (expected 0.0-2.0)", c.Reviewer.Model.Temperature)
	}
	if c.Reviewer.MaxPromptBytes < 0 {
		return fmt.Errorf("negative max_prompt_bytes: %d", c.Reviewer.MaxPromptBytes)
	}
	return nil
}
