package mock

import (
	"context"

	"github.com/fwojciec/emoscope"
)

// Analyzer is a mock of the consumer-side analyzer interfaces declared by
// the bubbletea and gin packages.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, raw string) ([]emoscope.ResultRecord, error)
}

func (a *Analyzer) Analyze(ctx context.Context, raw string) ([]emoscope.ResultRecord, error) {
	return a.AnalyzeFn(ctx, raw)
}
