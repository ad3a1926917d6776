package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/zeroshot"
	"go.opentelemetry.io/otel/attribute"
)

// Compile-time interface verification.
var _ emoscope.Classifier = (*AnthropicClassifier)(nil)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-haiku-4-5"

// AnthropicClassifier scores texts using the Anthropic Messages API.
// Works with both direct Anthropic API and Azure AI Foundry.
type AnthropicClassifier struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	labels    []string
}

// NewAnthropicClassifier creates a new Anthropic classifier.
func NewAnthropicClassifier(cfg Config) *AnthropicClassifier {
	var opts []option.RequestOption

	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	for k, v := range cfg.ExtraHeaders {
		opts = append(opts, option.WithHeader(k, v))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}

	return &AnthropicClassifier{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: cfg.maxTokens(),
		labels:    cfg.labels(),
	}
}

// Model returns the model name.
func (c *AnthropicClassifier) Model() string {
	return c.model
}

// Classify scores every text in one message exchange.
func (c *AnthropicClassifier) Classify(ctx context.Context, texts []string) ([]emoscope.ScoreDistribution, error) {
	userMessage := zeroshot.BuildPrompt(c.labels, texts)

	ctx, span := startSpan(ctx, "anthropic", c.model, c.maxTokens, userMessage)
	defer span.End()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: zeroshot.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(userMessage),
			),
		},
	})
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "api_error"))
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	if len(resp.Content) == 0 {
		span.SetAttributes(attribute.String("error.type", "empty_response"))
		return nil, ErrEmptyResponse
	}

	span.SetAttributes(
		attribute.String("gen_ai.response.model", c.model),
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.InputTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.OutputTokens),
	)

	dists, err := zeroshot.Parse(resp.Content[0].Text, len(texts))
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "parse_error"))
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	return dists, nil
}
