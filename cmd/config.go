package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	providerGemini = "gemini"
	providerOpenAI = "openai"
)

type Config struct {
	AI        *AIConfig        `mapstructure:"ai" validate:"required"`
	Screening *ScreeningConfig `mapstructure:"screening" validate:"required"`
	Document  *DocumentConfig  `mapstructure:"document" validate:"required"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider" validate:"oneof=gemini openai"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MaxLogLength int           `mapstructure:"max-log-length" validate:"gte=0"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
	OpenAI       *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries" validate:"gte=0"`
}

type OpenAIConfig struct {
	BaseURL    string `mapstructure:"base-url" validate:"omitempty,url"`
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type ScreeningConfig struct {
	Strategy      string `mapstructure:"strategy" validate:"oneof=oracle lexical"`
	Workers       int    `mapstructure:"workers" validate:"gte=0"`
	ExtraCriteria string `mapstructure:"extra-criteria"`
	ResultsDir    string `mapstructure:"results-dir" validate:"required"`
}

type DocumentConfig struct {
	ParserURL string        `mapstructure:"parser-url" validate:"omitempty,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", providerGemini)
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.openai.base-url", "http://localhost:8000/v1")
	v.SetDefault("ai.openai.model", "")
	v.SetDefault("ai.openai.api-key-file", "")
	v.SetDefault("ai.openai.api-key", "")
	v.SetDefault("screening.strategy", "oracle")
	v.SetDefault("screening.workers", 4)
	v.SetDefault("screening.extra-criteria", "")
	v.SetDefault("screening.results-dir", "assets/results")
	v.SetDefault("document.parser-url", "")
	v.SetDefault("document.timeout", 30*time.Second)
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	config.Screening.Strategy = strings.ToLower(strings.TrimSpace(config.Screening.Strategy))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks field constraints and the provider specific sections.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.AI.Provider {
	case providerGemini:
		if c.AI.Gemini == nil {
			return fmt.Errorf("invalid config: ai.gemini section is required for the gemini provider")
		}
	case providerOpenAI:
		if c.AI.OpenAI == nil || strings.TrimSpace(c.AI.OpenAI.Model) == "" {
			return fmt.Errorf("invalid config: ai.openai.model is required for the openai provider")
		}
	}

	return nil
}
