package llm

import (
	"context"

	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var _ emoscope.Loader = (*Loader)(nil)

// Loader builds an LLM classifier from a Config.
type Loader struct {
	cfg   Config
	model string
	build func(Config) emoscope.Classifier
}

// NewOpenAILoader creates a Loader for an OpenAI-compatible endpoint.
func NewOpenAILoader(cfg Config) *Loader {
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	return &Loader{
		cfg:   cfg,
		model: cfg.Model,
		build: func(cfg Config) emoscope.Classifier { return NewOpenAIClassifier(cfg) },
	}
}

// NewAnthropicLoader creates a Loader for the Anthropic Messages API.
func NewAnthropicLoader(cfg Config) *Loader {
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicModel
	}
	return &Loader{
		cfg:   cfg,
		model: cfg.Model,
		build: func(cfg Config) emoscope.Classifier { return NewAnthropicClassifier(cfg) },
	}
}

// Model returns the model name.
func (l *Loader) Model() string {
	return l.model
}

// Load returns the classifier. A custom BaseURL may serve without a key,
// otherwise the key is required.
func (l *Loader) Load(_ context.Context) (emoscope.Classifier, error) {
	if l.cfg.APIKey == "" && l.cfg.BaseURL == "" {
		return nil, ErrMissingAPIKey
	}
	return l.build(l.cfg), nil
}
