// Package zeroshot holds the prompt and response handling shared by the
// LLM-backed classifiers.
package zeroshot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/emoscope"
)

// SystemPrompt is the system-level instruction for LLM classifiers.
//
//go:embed prompts/system.md
var SystemPrompt string

// UserPromptTemplate precedes the label list and the numbered texts.
//
//go:embed prompts/user.md
var UserPromptTemplate string

// BuildPrompt creates the user prompt for classifying texts against labels.
func BuildPrompt(labels, texts []string) string {
	var sb strings.Builder
	sb.WriteString(UserPromptTemplate)
	fmt.Fprintf(&sb, "Allowed labels: %s\n\n", strings.Join(labels, ", "))
	sb.WriteString("## Texts\n\n")
	for i, text := range texts {
		fmt.Fprintf(&sb, "[%d] %s\n", i, text)
	}
	return sb.String()
}

// Response is the JSON document LLM classifiers are asked to produce.
type Response struct {
	Results []Result `json:"results"`
}

// Result holds the scores for the text at Index.
type Result struct {
	Index  int                        `json:"index"`
	Scores emoscope.ScoreDistribution `json:"scores"`
}

// Parse decodes an LLM reply into one distribution per text, ordered by index.
// Every index in [0, n) must appear exactly once.
func Parse(text string, n int) ([]emoscope.ScoreDistribution, error) {
	var resp Response
	if err := json.Unmarshal([]byte(StripMarkdownFences(text)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return resp.Distributions(n)
}

// Distributions orders the results by index and checks coverage.
func (r Response) Distributions(n int) ([]emoscope.ScoreDistribution, error) {
	out := make([]emoscope.ScoreDistribution, n)
	seen := make([]bool, n)
	for _, res := range r.Results {
		if res.Index < 0 || res.Index >= n {
			return nil, fmt.Errorf("result index %d out of range for %d texts", res.Index, n)
		}
		if seen[res.Index] {
			return nil, fmt.Errorf("duplicate result for index %d", res.Index)
		}
		seen[res.Index] = true
		out[res.Index] = res.Scores
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("missing result for index %d", i)
		}
	}
	return out, nil
}

// StripMarkdownFences removes a surrounding ```json ... ``` block, if any.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
