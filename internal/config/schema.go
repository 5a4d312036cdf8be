package config

// ReviewerConfig represents the reviewer persona and model parameters
type ReviewerConfig struct {
	Reviewer Reviewer `yaml:"reviewer"`
}

type Reviewer struct {
	SystemInstruction string      `yaml:"system_instruction"`
	Model             ModelConfig `yaml:"model"`
	MaxPromptBytes    int         `yaml:"max_prompt_bytes"`
}

type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}
