package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

const (
	// APIKeyEnv overrides llm.key so the secret never has to live in the file.
	APIKeyEnv = "TOGETHER_API_KEY"

	defaultWikiBaseURL  = "https://en.wikipedia.org/api/rest_v1"
	defaultWikiTitle    = "Autocracy"
	defaultUserAgent    = "wiki-chat/1.0 (https://github.com/wiki-chat)"
	defaultMinSentences = 20
	defaultEndpoint     = "https://api.together.xyz/v1/chat/completions"
	defaultModel        = "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"
	defaultMaxTokens    = 100
	defaultTemperature  = 0.7
	defaultTopP         = 0.9
	defaultTopK         = 50
	defaultRepPenalty   = 1.1
	defaultTimeout      = 60 * time.Second
	defaultChatTemplate = "Using the following Wikipedia article as a reference, answer the question: \n{{.context}}\nUser: {{.question}}"
	defaultDemoTemplate = "Based on the following Wikipedia article on autocracy, provide a helpful response: \n{{.context}}\nUser question: {{.question}}"
	defaultDemoQuestion = "What is the definition of an autocracy?"
)

type Config struct {
	Debug  bool         `yaml:"debug"`
	Wiki   WikiConfig   `yaml:"wiki"`
	LLM    LLMConfig    `yaml:"llm"`
	Prompt PromptConfig `yaml:"prompt"`
}

type WikiConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Title        string        `yaml:"title"`
	UserAgent    string        `yaml:"user_agent"`
	MinSentences int           `yaml:"min_sentences"`
	Timeout      time.Duration `yaml:"timeout"`
}

type LLMConfig struct {
	Endpoint          string        `yaml:"endpoint"`
	Key               string        `yaml:"key"`
	Model             string        `yaml:"model"`
	MaxTokens         int           `yaml:"max_tokens"`
	Temperature       float64       `yaml:"temperature"`
	TopP              float64       `yaml:"top_p"`
	TopK              int           `yaml:"top_k"`
	RepetitionPenalty float64       `yaml:"repetition_penalty"`
	Stop              []string      `yaml:"stop"`
	Timeout           time.Duration `yaml:"timeout"`
}

type PromptConfig struct {
	Template     string `yaml:"template"`
	DemoTemplate string `yaml:"demo_template"`
	// DemoQuestion is asked once with and without context at startup. Empty disables it.
	DemoQuestion string `yaml:"demo_question"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		Wiki: WikiConfig{
			BaseURL:      defaultWikiBaseURL,
			Title:        defaultWikiTitle,
			UserAgent:    defaultUserAgent,
			MinSentences: defaultMinSentences,
			Timeout:      defaultTimeout,
		},
		LLM: LLMConfig{
			Endpoint:          defaultEndpoint,
			Model:             defaultModel,
			MaxTokens:         defaultMaxTokens,
			Temperature:       defaultTemperature,
			TopP:              defaultTopP,
			TopK:              defaultTopK,
			RepetitionPenalty: defaultRepPenalty,
			Stop:              []string{"<|eot_id|>", "<|eom_id|>"},
			Timeout:           defaultTimeout,
		},
		Prompt: PromptConfig{
			Template:     defaultChatTemplate,
			DemoTemplate: defaultDemoTemplate,
			DemoQuestion: defaultDemoQuestion,
		},
	}
}

// LoadConfig overlays the YAML file at path on top of Default and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.LLM.Key = key
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Wiki.BaseURL == "" || c.Wiki.Title == "":
		return fmt.Errorf("%w: wiki base_url and title are required", ErrInvalidConfig)
	case c.Wiki.MinSentences <= 0:
		return fmt.Errorf("%w: wiki.min_sentences must be positive", ErrInvalidConfig)
	case c.LLM.Endpoint == "" || c.LLM.Model == "":
		return fmt.Errorf("%w: llm endpoint and model are required", ErrInvalidConfig)
	case c.LLM.Key == "":
		return fmt.Errorf("%w: llm key is empty, set %s", ErrInvalidConfig, APIKeyEnv)
	case c.LLM.MaxTokens <= 0:
		return fmt.Errorf("%w: llm.max_tokens must be positive", ErrInvalidConfig)
	case c.Prompt.Template == "":
		return fmt.Errorf("%w: prompt.template is required", ErrInvalidConfig)
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	out := *c
	if out.LLM.Key != "" {
		out.LLM.Key = "***"
	}
	return out
}
