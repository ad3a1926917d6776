package huggingface

import (
	"context"

	"github.com/fwojciec/emoscope"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ emoscope.Classifier = (*Classifier)(nil)

// DefaultMaxBatchSize is the number of texts sent in one request.
const DefaultMaxBatchSize = 32

// DefaultConcurrency is the number of requests in flight for a large batch.
const DefaultConcurrency = 4

// Classifier implements emoscope.Classifier against one model.
type Classifier struct {
	client       *Client
	model        string
	maxBatchSize int
	concurrency  int
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithMaxBatchSize sets how many texts go into one request.
func WithMaxBatchSize(n int) ClassifierOption {
	return func(c *Classifier) {
		if n > 0 {
			c.maxBatchSize = n
		}
	}
}

// WithConcurrency sets how many chunk requests may run at once.
func WithConcurrency(n int) ClassifierOption {
	return func(c *Classifier) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewClassifier creates a Classifier for model.
func NewClassifier(client *Client, model string, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		client:       client,
		model:        model,
		maxBatchSize: DefaultMaxBatchSize,
		concurrency:  DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the model identifier.
func (c *Classifier) Model() string {
	return c.model
}

// Classify scores texts. Batches larger than the max batch size are split
// into chunks that are sent concurrently; results keep input order.
func (c *Classifier) Classify(ctx context.Context, texts []string) ([]emoscope.ScoreDistribution, error) {
	if len(texts) <= c.maxBatchSize {
		return c.client.Classify(ctx, c.model, texts)
	}

	out := make([]emoscope.ScoreDistribution, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for start := 0; start < len(texts); start += c.maxBatchSize {
		end := min(start+c.maxBatchSize, len(texts))
		g.Go(func() error {
			dists, err := c.client.Classify(ctx, c.model, texts[start:end])
			if err != nil {
				return err
			}
			copy(out[start:end], dists)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
