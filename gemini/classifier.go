package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/zeroshot"
)

// Compile-time interface verification.
var _ emoscope.Classifier = (*Classifier)(nil)

// DefaultClassifyTimeout is the default timeout for a single classify call.
const DefaultClassifyTimeout = 60 * time.Second

// Classifier implements emoscope.Classifier using Google Gemini.
type Classifier struct {
	client  GenerativeClient
	model   string
	labels  []string
	timeout time.Duration
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithTimeout sets the timeout for API calls.
func WithTimeout(d time.Duration) ClassifierOption {
	return func(c *Classifier) {
		c.timeout = d
	}
}

// WithLabels replaces the label vocabulary the model may choose from.
func WithLabels(labels []string) ClassifierOption {
	return func(c *Classifier) {
		c.labels = labels
	}
}

// NewClassifier creates a new Classifier.
func NewClassifier(client GenerativeClient, model string, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		client:  client,
		model:   model,
		labels:  emoscope.Labels,
		timeout: DefaultClassifyTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify scores every text in a single request.
func (c *Classifier) Classify(ctx context.Context, texts []string) ([]emoscope.ScoreDistribution, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*Content{{
		Parts: []*Part{{Text: zeroshot.BuildPrompt(c.labels, texts)}},
	}}

	resp, err := c.client.GenerateContent(ctx, c.model, contents, BuildConfig(c.labels))
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini: returned nil response")
	}

	dists, err := zeroshot.Parse(resp.Text, len(texts))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return dists, nil
}

// BuildConfig returns the config for classification calls. The response
// schema restricts labels to the given vocabulary.
func BuildConfig(labels []string) *GenerateContentConfig {
	temp := float32(0) // Scores should not vary between identical calls
	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{Text: zeroshot.SystemPrompt}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(labels),
	}
}

// ResponseSchema describes the {"results":[{"index","scores"}]} document.
func ResponseSchema(labels []string) *Schema {
	score := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"label": {Type: "string", Enum: labels},
			"score": {Type: "number"},
		},
		Required:         []string{"label", "score"},
		PropertyOrdering: []string{"label", "score"},
	}
	result := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"index":  {Type: "integer", Description: "0-based number of the text"},
			"scores": {Type: "array", Items: score},
		},
		Required:         []string{"index", "scores"},
		PropertyOrdering: []string{"index", "scores"},
	}
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"results": {Type: "array", Items: result},
		},
		Required: []string{"results"},
	}
}
