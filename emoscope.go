// Package emoscope provides domain types for classifying the emotion of text lines.
package emoscope

import "context"

// DefaultModel is the pretrained emotion model used when none is configured.
const DefaultModel = "j-hartmann/emotion-english-distilroberta-base"

// Labels is the label vocabulary of DefaultModel, in the model's own order.
// Zero-shot backends use it to constrain their output.
var Labels = []string{"anger", "disgust", "fear", "joy", "neutral", "sadness", "surprise"}

// Score is a single (label, score) pair produced by a classifier.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ScoreDistribution is the full list of scores a classifier returned for one
// text, in the order the classifier returned them.
type ScoreDistribution []Score

// ResultRecord is the per-line outcome of an analysis.
type ResultRecord struct {
	Text       string            `json:"input_text"`
	Emotion    string            `json:"dominant_emotion"` // Upper-cased label
	Confidence float64           `json:"confidence"`
	Scores     ScoreDistribution `json:"all_scores,omitempty"`
}

// Classifier scores a batch of texts.
type Classifier interface {
	// Classify returns one ScoreDistribution per input text, in input order.
	Classify(ctx context.Context, texts []string) ([]ScoreDistribution, error)
}

// Loader performs the one-time initialization of a classifier backend.
type Loader interface {
	// Load initializes the backend and returns a ready Classifier.
	Load(ctx context.Context) (Classifier, error)
	// Model returns the model identifier the loader initializes.
	Model() string
}

// MessageSource produces candidate texts from an external source such as a
// patch or a commit history.
type MessageSource interface {
	Messages(ctx context.Context) ([]string, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}
