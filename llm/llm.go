// Package llm scores emotions zero-shot with chat-completion style LLM APIs.
package llm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/zeroshot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxTokens bounds the reply length when none is configured.
const DefaultMaxTokens = 4096

// ErrMissingAPIKey is returned by a Loader with neither an API key nor a
// custom base URL.
var ErrMissingAPIKey = errors.New("llm: API key is required")

// ErrEmptyResponse is returned when the API answers without any content.
var ErrEmptyResponse = errors.New("llm: API returned empty response")

var tracer = otel.Tracer("emoscope/llm")

// Config holds connection settings shared by both providers.
type Config struct {
	// BaseURL is the API endpoint. Empty uses the provider default.
	BaseURL string
	// APIKey is the API key.
	APIKey string
	// Model is the model name.
	Model string
	// MaxTokens is the maximum number of output tokens.
	MaxTokens int64
	// Labels is the label vocabulary. Empty uses emoscope.Labels.
	Labels []string
	// ExtraHeaders are additional HTTP headers (e.g., "api-key" for Azure).
	ExtraHeaders map[string]string
}

func (c Config) maxTokens() int64 {
	if c.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.MaxTokens
}

func (c Config) labels() []string {
	if len(c.Labels) == 0 {
		return emoscope.Labels
	}
	return c.Labels
}

// startSpan opens a GenAI client span named "chat {model}".
func startSpan(ctx context.Context, provider, model string, maxTokens int64, userMessage string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "chat "+model,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gen_ai.operation.name", "chat"),
			attribute.String("gen_ai.provider.name", provider),
			attribute.String("gen_ai.request.model", model),
			attribute.Int64("gen_ai.request.max_tokens", maxTokens),
		),
	)
	inputMessages := []map[string]string{
		{"role": "system", "content": zeroshot.SystemPrompt},
		{"role": "user", "content": userMessage},
	}
	if inputJSON, err := json.Marshal(inputMessages); err == nil {
		span.SetAttributes(attribute.String("gen_ai.input.messages", string(inputJSON)))
	}
	return ctx, span
}
