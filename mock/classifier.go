// Package mock provides test doubles for emoscope interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var (
	_ emoscope.Classifier = (*Classifier)(nil)
	_ emoscope.Loader     = (*Loader)(nil)
)

// Classifier is a mock implementation of emoscope.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, texts []string) ([]emoscope.ScoreDistribution, error)
}

func (c *Classifier) Classify(ctx context.Context, texts []string) ([]emoscope.ScoreDistribution, error) {
	return c.ClassifyFn(ctx, texts)
}

// Loader is a mock implementation of emoscope.Loader.
type Loader struct {
	LoadFn  func(ctx context.Context) (emoscope.Classifier, error)
	ModelFn func() string
}

func (l *Loader) Load(ctx context.Context) (emoscope.Classifier, error) {
	return l.LoadFn(ctx)
}

func (l *Loader) Model() string {
	if l.ModelFn == nil {
		return "mock-model"
	}
	return l.ModelFn()
}
