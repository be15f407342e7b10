package llm

import "fmt"

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskRiderParse TaskType = "rider_parse"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
}

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider string
	APIKey   string
	LogCalls bool
	// Endpoint is the Ollama base URL, or a Gemini base URL override.
	Endpoint string
	Model    string
	Tasks    map[TaskType]TaskConfig
}

// DefaultConfig returns the Gemini configuration used when nothing is set.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider: ProviderGemini,
		Model:    "gemini-2.5-flash",
		Tasks: map[TaskType]TaskConfig{
			TaskRiderParse: {Temperature: 0.1, MaxTokens: 4096},
		},
	}
}

// Task returns the parameters for task, falling back to the defaults.
func (c LLMConfig) Task(task TaskType) TaskConfig {
	if tc, ok := c.Tasks[task]; ok {
		return tc
	}
	return DefaultConfig().Tasks[task]
}

// NewClient builds the client for the configured provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(cfg, observer)
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
