package llm

import (
	"context"
	"fmt"

	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/zeroshot"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
)

// Compile-time interface verification.
var _ emoscope.Classifier = (*OpenAIClassifier)(nil)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClassifier scores texts using an OpenAI-compatible Chat Completions API.
// Works with OpenAI, Azure OpenAI, and any OpenAI-compatible endpoint.
type OpenAIClassifier struct {
	client    openai.Client
	model     string
	maxTokens int64
	labels    []string
}

// NewOpenAIClassifier creates a new OpenAI-compatible classifier.
func NewOpenAIClassifier(cfg Config) *OpenAIClassifier {
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
		model = DefaultOpenAIModel
	}

	return &OpenAIClassifier{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: cfg.maxTokens(),
		labels:    cfg.labels(),
	}
}

// Model returns the model name.
func (c *OpenAIClassifier) Model() string {
	return c.model
}

// Classify scores every text in one chat completion.
func (c *OpenAIClassifier) Classify(ctx context.Context, texts []string) ([]emoscope.ScoreDistribution, error) {
	userMessage := zeroshot.BuildPrompt(c.labels, texts)

	ctx, span := startSpan(ctx, "openai", c.model, c.maxTokens, userMessage)
	defer span.End()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(zeroshot.SystemPrompt),
			openai.UserMessage(userMessage),
		},
		MaxCompletionTokens: openai.Int(c.maxTokens),
	})
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "api_error"))
		return nil, fmt.Errorf("openai API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		span.SetAttributes(attribute.String("error.type", "empty_response"))
		return nil, ErrEmptyResponse
	}

	span.SetAttributes(
		attribute.String("gen_ai.response.model", resp.Model),
		attribute.String("gen_ai.response.id", resp.ID),
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.CompletionTokens),
	)

	dists, err := zeroshot.Parse(resp.Choices[0].Message.Content, len(texts))
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "parse_error"))
		return nil, fmt.Errorf("openai: %w", err)
	}
	return dists, nil
}
