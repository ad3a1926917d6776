package gemini

import (
	"context"
	"errors"

	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var _ emoscope.Loader = (*Loader)(nil)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("gemini: API key is required")

// Loader connects to Gemini and returns a Classifier.
type Loader struct {
	apiKey  string
	baseURL string
	client  GenerativeClient
	model   string
	opts    []ClassifierOption
}

// NewLoader creates a Loader that dials Gemini with apiKey on Load.
// An empty model uses DefaultModel.
func NewLoader(apiKey, model string, opts ...ClassifierOption) *Loader {
	if model == "" {
		model = DefaultModel
	}
	return &Loader{apiKey: apiKey, model: model, opts: opts}
}

// WithBaseURL sets the API endpoint used when the Loader dials Gemini.
func (l *Loader) WithBaseURL(baseURL string) *Loader {
	l.baseURL = baseURL
	return l
}

// NewLoaderWithClient creates a Loader around an existing client.
func NewLoaderWithClient(client GenerativeClient, model string, opts ...ClassifierOption) *Loader {
	l := NewLoader("", model, opts...)
	l.client = client
	return l
}

// Model returns the model name.
func (l *Loader) Model() string {
	return l.model
}

// Load creates the underlying client. It does not issue a request.
func (l *Loader) Load(ctx context.Context) (emoscope.Classifier, error) {
	client := l.client
	if client == nil {
		if l.apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		c, err := NewClient(ctx, l.apiKey, l.baseURL)
		if err != nil {
			return nil, err
		}
		client = c
	}
	return NewClassifier(client, l.model, l.opts...), nil
}
