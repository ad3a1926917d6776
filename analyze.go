package emoscope

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// SplitLines splits raw input on newlines, trims each piece and drops the
// ones that are empty after trimming. Order is kept and duplicates are not
// removed.
func SplitLines(raw string) []string {
	pieces := strings.Split(raw, "\n")
	lines := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		lines = append(lines, piece)
	}
	return lines
}

// Dominant returns the highest-scoring entry of dist.
//
// Ties are broken by iteration order: the first label holding the maximum
// score wins. NaN scores are skipped. Returns false when dist has no
// comparable score.
func Dominant(dist ScoreDistribution) (Score, bool) {
	var (
		best  Score
		found bool
	)
	for _, s := range dist {
		if math.IsNaN(s.Score) {
			continue
		}
		if !found || s.Score > best.Score {
			best, found = s, true
		}
	}
	return best, found
}

// Analyze turns multi-line input into one ResultRecord per non-empty line.
//
// Input with no non-empty lines returns an empty slice without calling c.
// Otherwise c is called exactly once with the whole batch.
func Analyze(ctx context.Context, c Classifier, raw string) ([]ResultRecord, error) {
	lines := SplitLines(raw)
	if len(lines) == 0 {
		return []ResultRecord{}, nil
	}

	dists, err := c.Classify(ctx, lines)
	if err != nil {
		return nil, &ClassificationError{Batch: len(lines), Err: err}
	}
	return Reduce(lines, dists)
}

// Reduce pairs each line with its distribution and selects the dominant label.
func Reduce(lines []string, dists []ScoreDistribution) ([]ResultRecord, error) {
	if len(dists) != len(lines) {
		return nil, &ClassificationError{
			Batch: len(lines),
			Err:   fmt.Errorf("classifier returned %d distributions for %d texts", len(dists), len(lines)),
		}
	}

	records := make([]ResultRecord, len(lines))
	for i, line := range lines {
		top, ok := Dominant(dists[i])
		if !ok {
			return nil, &ClassificationError{
				Batch: len(lines),
				Err:   fmt.Errorf("no usable score for text %d", i),
			}
		}
		records[i] = ResultRecord{
			Text:       line,
			Emotion:    strings.ToUpper(top.Label),
			Confidence: top.Score,
			Scores:     dists[i],
		}
	}
	return records, nil
}

// Analyzer runs Analyze against a Provider's classifier with a bounded call
// time and an optional single retry.
type Analyzer struct {
	Provider *Provider

	// Timeout bounds each classifier call. Zero means no bound.
	Timeout time.Duration

	// Retry allows one additional attempt when classification fails.
	// A second failure is returned to the caller.
	Retry bool
}

// Analyze gets the classifier handle and analyzes raw.
// A *ModelLoadError from the Provider is returned unchanged.
func (a *Analyzer) Analyze(ctx context.Context, raw string) ([]ResultRecord, error) {
	lines := SplitLines(raw)
	if len(lines) == 0 {
		return []ResultRecord{}, nil
	}

	c, err := a.Provider.Get(ctx)
	if err != nil {
		return nil, err
	}

	attempts := 1
	if a.Retry {
		attempts = 2
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := a.classify(ctx, c, lines)
		if err == nil {
			return records, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (a *Analyzer) classify(ctx context.Context, c Classifier, lines []string) ([]ResultRecord, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	dists, err := c.Classify(ctx, lines)
	if err != nil {
		return nil, &ClassificationError{Batch: len(lines), Err: err}
	}
	return Reduce(lines, dists)
}
