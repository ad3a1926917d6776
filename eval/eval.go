// Package eval provides helpers for opt-in tests against live classifier
// backends.
package eval

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/fwojciec/emoscope"
)

// Case is one labeled example. Want lists the acceptable dominant emotions.
type Case struct {
	Text string
	Want []string
}

// Miss is a case whose dominant emotion was not acceptable.
type Miss struct {
	Case Case
	Got  string
}

// Report summarizes a run over a set of cases.
type Report struct {
	Total  int
	Misses []Miss
}

// Agreement returns the fraction of cases that matched.
func (r Report) Agreement() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Total-len(r.Misses)) / float64(r.Total)
}

// Eval runs labeled cases through a classifier.
type Eval struct {
	classifier emoscope.Classifier
}

// New creates an Eval for classifier.
func New(classifier emoscope.Classifier) *Eval {
	return &Eval{classifier: classifier}
}

// Run classifies all cases in one batch and reports the misses.
func (e *Eval) Run(ctx context.Context, cases []Case) (Report, error) {
	texts := make([]string, len(cases))
	for i, c := range cases {
		texts[i] = c.Text
	}
	records, err := emoscope.Analyze(ctx, e.classifier, strings.Join(texts, "\n"))
	if err != nil {
		return Report{}, err
	}
	if len(records) != len(cases) {
		return Report{}, fmt.Errorf("got %d records for %d cases (cases must be single non-empty lines)", len(records), len(cases))
	}

	report := Report{Total: len(cases)}
	for i, r := range records {
		if !matches(cases[i].Want, r.Emotion) {
			report.Misses = append(report.Misses, Miss{Case: cases[i], Got: r.Emotion})
		}
	}
	return report, nil
}

// AssertDominant fails tb unless the dominant emotion of text is one of want.
func (e *Eval) AssertDominant(tb testing.TB, text string, want ...string) {
	tb.Helper()

	report, err := e.Run(tb.Context(), []Case{{Text: text, Want: want}})
	if err != nil {
		tb.Errorf("classification failed: %v", err)
		return
	}
	for _, m := range report.Misses {
		tb.Errorf("dominant emotion of %q is %s, want one of %v", text, m.Got, want)
	}
}

// AssertAgreement fails tb when fewer than min of cases match.
func (e *Eval) AssertAgreement(tb testing.TB, cases []Case, min float64) {
	tb.Helper()

	report, err := e.Run(tb.Context(), cases)
	if err != nil {
		tb.Errorf("classification failed: %v", err)
		return
	}
	if got := report.Agreement(); got < min {
		for _, m := range report.Misses {
			tb.Logf("miss: %q got %s, want one of %v", m.Case.Text, m.Got, m.Case.Want)
		}
		tb.Errorf("agreement %.2f below %.2f", got, min)
	}
}

func matches(want []string, got string) bool {
	return slices.ContainsFunc(want, func(w string) bool {
		return strings.EqualFold(w, got)
	})
}

// SkipUnlessEvals skips the test unless GOEVALS environment variable is set.
// Use at the start of eval tests to make them opt-in.
func SkipUnlessEvals(tb testing.TB) {
	tb.Helper()
	if os.Getenv("GOEVALS") == "" {
		tb.Skip("GOEVALS not set")
	}
}

// RequireEnv returns the first non-empty environment variable among keys
// and skips the test when none is set.
func RequireEnv(tb testing.TB, keys ...string) string {
	tb.Helper()
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	tb.Skipf("none of %v set", keys)
	return ""
}

// Smoke is a small labeled set that any competent emotion backend agrees on.
var Smoke = []Case{
	{Text: "I am so happy, this is the best day of my life!", Want: []string{"JOY", "HAPPINESS"}},
	{Text: "I can't believe you broke my guitar, I'm furious.", Want: []string{"ANGER"}},
	{Text: "Something feels wrong... I can sense it breathing in the dark.", Want: []string{"FEAR"}},
	{Text: "My dog died this morning and I miss him terribly.", Want: []string{"SADNESS"}},
	{Text: "The meeting is scheduled for 3pm in room B.", Want: []string{"NEUTRAL"}},
	{Text: "Wait, you got the job? No way!", Want: []string{"SURPRISE", "JOY"}},
}
