package emoscope

import (
	"fmt"
	"strings"
)

// FormatConfidence renders a confidence score with four decimal places.
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.4f", score)
}

// FormatPlain renders records as a plain-text report, one line per record.
// Used for clipboard output and non-terminal writers.
func FormatPlain(records []ResultRecord) string {
	var sb strings.Builder
	for _, r := range records {
		fmt.Fprintf(&sb, "%-8s %s  %q\n", r.Emotion, FormatConfidence(r.Confidence), r.Text)
	}
	return sb.String()
}

// Summary counts how many records share each dominant emotion.
// Emotions are returned in order of first appearance.
func Summary(records []ResultRecord) []EmotionCount {
	index := make(map[string]int)
	var counts []EmotionCount
	for _, r := range records {
		i, ok := index[r.Emotion]
		if !ok {
			i = len(counts)
			index[r.Emotion] = i
			counts = append(counts, EmotionCount{Emotion: r.Emotion})
		}
		counts[i].Count++
	}
	return counts
}

// EmotionCount is one row of a Summary.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}
