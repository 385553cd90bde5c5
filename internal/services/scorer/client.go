package scorer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultHTTPTimeout = 120 * time.Second

// Service describes the scoring operations the filter stage depends on.
type Service interface {
	Score(ctx context.Context, imagePath string) (float64, error)
	MatchProbability(ctx context.Context, imagePath string, prompts []string) (float64, error)
}

// HTTPDoer describes the HTTP client used by the scorer client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps the scorer sidecar HTTP API.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// Option customizes the scorer client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client (useful for tests).
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New constructs a scorer client for the given base URL. timeoutSeconds
// bounds each request; zero or negative falls back to a generous default
// since CLIP inference on CPU can be slow.
func New(baseURL string, timeoutSeconds int, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("scorer url required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid scorer url %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("scorer url must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("scorer url missing host: %q", baseURL)
	}

	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the normalized sidecar endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type scoreRequest struct {
	Image string `json:"image"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
	Error string  `json:"error,omitempty"`
}

type matchRequest struct {
	Image   string   `json:"image"`
	Prompts []string `json:"prompts"`
}

type matchResponse struct {
	Probabilities []float64 `json:"probabilities"`
	Error         string    `json:"error,omitempty"`
}

// Score asks the sidecar for the aesthetic grade of the image at imagePath.
// Grades land on a roughly 0 to 10 scale.
func (c *Client) Score(ctx context.Context, imagePath string) (float64, error) {
	encoded, err := encodeImage(imagePath)
	if err != nil {
		return 0, err
	}
	var out scoreResponse
	if err := c.postJSON(ctx, "/v1/score", scoreRequest{Image: encoded}, &out); err != nil {
		return 0, err
	}
	if out.Error != "" {
		return 0, fmt.Errorf("scorer: %s", out.Error)
	}
	return out.Score, nil
}

// MatchProbability asks the sidecar how strongly the image matches each
// prompt and returns the highest probability. The sidecar computes a
// softmax over the prompts, so values land in [0, 1].
func (c *Client) MatchProbability(ctx context.Context, imagePath string, prompts []string) (float64, error) {
	if len(prompts) == 0 {
		return 0, errors.New("scorer match: prompts required")
	}
	encoded, err := encodeImage(imagePath)
	if err != nil {
		return 0, err
	}
	var out matchResponse
	if err := c.postJSON(ctx, "/v1/match", matchRequest{Image: encoded, Prompts: prompts}, &out); err != nil {
		return 0, err
	}
	if out.Error != "" {
		return 0, fmt.Errorf("scorer: %s", out.Error)
	}
	if len(out.Probabilities) != len(prompts) {
		return 0, fmt.Errorf("scorer returned %d probabilities for %d prompts", len(out.Probabilities), len(prompts))
	}
	highest := 0.0
	for _, p := range out.Probabilities {
		highest = max(highest, p)
	}
	return highest, nil
}

// Health probes the sidecar health endpoint.
func (c *Client) Health(ctx context.Context) error {
	endpoint, err := url.JoinPath(c.baseURL, "/healthz")
	if err != nil {
		return fmt.Errorf("scorer health: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("scorer health: request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scorer health: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("scorer health: http %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("scorer: build url: %w", err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("scorer: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("scorer: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scorer: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("scorer: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("scorer: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("scorer: decode response: %w", err)
	}
	return nil
}

func encodeImage(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
