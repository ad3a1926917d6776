package huggingface

import (
	"context"
	"fmt"

	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var _ emoscope.Loader = (*Loader)(nil)

// warmupText is classified once at load time.
const warmupText = "warm up"

// Loader prepares a Classifier and checks that the endpoint can serve the
// model before handing it out.
type Loader struct {
	client *Client
	model  string
	opts   []ClassifierOption
}

// NewLoader creates a Loader. An empty model uses emoscope.DefaultModel.
func NewLoader(client *Client, model string, opts ...ClassifierOption) *Loader {
	if model == "" {
		model = emoscope.DefaultModel
	}
	return &Loader{client: client, model: model, opts: opts}
}

// Model returns the model identifier.
func (l *Loader) Model() string {
	return l.model
}

// Load sends a one-text warm-up request. With wait_for_model set this blocks
// until the remote model is resident, and an unknown model fails here rather
// than on the first real batch.
func (l *Loader) Load(ctx context.Context) (emoscope.Classifier, error) {
	c := NewClassifier(l.client, l.model, l.opts...)
	dists, err := c.Classify(ctx, []string{warmupText})
	if err != nil {
		return nil, fmt.Errorf("warm-up request: %w", err)
	}
	if len(dists) != 1 || len(dists[0]) == 0 {
		return nil, fmt.Errorf("warm-up request: model returned no scores")
	}
	return c, nil
}
