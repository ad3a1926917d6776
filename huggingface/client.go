// Package huggingface classifies text through a Hugging Face style
// text-classification inference endpoint.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/emoscope"
)

// DefaultBaseURL is the hosted Hugging Face Inference API.
const DefaultBaseURL = "https://api-inference.huggingface.co"

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 60 * time.Second

// request is the body sent to the inference endpoint.
// A null top_k asks the pipeline for every label, not just the best one.
type request struct {
	Inputs     []string   `json:"inputs"`
	Parameters parameters `json:"parameters"`
	Options    options    `json:"options"`
}

type parameters struct {
	TopK *int `json:"top_k"`
}

type options struct {
	WaitForModel bool `json:"wait_for_model"`
}

// APIError is returned for non-200 responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("inference endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("inference endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// Client is an HTTP client for the inference endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client. An empty baseURL uses DefaultBaseURL and a
// zero timeout uses DefaultTimeout. The token may be empty for endpoints
// that need no authentication.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Classify sends texts to model in a single request and returns one score
// distribution per text.
func (c *Client) Classify(ctx context.Context, model string, texts []string) ([]emoscope.ScoreDistribution, error) {
	body, err := json.Marshal(request{
		Inputs:  texts,
		Options: options{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	dists, err := decodeDistributions(respBody, len(texts))
	if err != nil {
		return nil, err
	}
	if len(dists) != len(texts) {
		return nil, fmt.Errorf("endpoint returned %d results for %d texts", len(dists), len(texts))
	}
	return dists, nil
}

// decodeDistributions accepts the nested list form and, for a single input,
// the flat list some endpoints return.
func decodeDistributions(body []byte, n int) ([]emoscope.ScoreDistribution, error) {
	var nested []emoscope.ScoreDistribution
	nestedErr := json.Unmarshal(body, &nested)
	if nestedErr == nil {
		return nested, nil
	}
	if n == 1 {
		var flat emoscope.ScoreDistribution
		if err := json.Unmarshal(body, &flat); err == nil {
			return []emoscope.ScoreDistribution{flat}, nil
		}
	}
	return nil, fmt.Errorf("failed to decode response: %w", nestedErr)
}

// Health checks that the endpoint answers at all. Any status below 500 counts
// as reachable since hosted endpoints reply 404 to the bare root.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}
