// Package gemini implements the ai.Client interface against a Gemini-style
// generateContent HTTP endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/util"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/ai"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	// ErrUnavailable marks a transient 503 from the generation endpoint.
	// It is the only condition the client retries.
	ErrUnavailable = errors.New("generation endpoint unavailable")

	// ErrEnvelope marks a response that does not match the expected
	// provider envelope shape.
	ErrEnvelope = errors.New("unexpected response envelope")
)

const (
	defaultBaseURL        = "https://generativelanguage.googleapis.com"
	defaultModel          = "gemini-2.0-flash"
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// Client talks to a generateContent endpoint with the request envelope
// {contents:[{parts:[{text:...}]}]} and reads the generated text out of
// candidates[0].content.parts[0].text.
type Client struct {
	baseURL string
	apiKey  string
	model   string

	maxRetries     int
	retryBaseDelay time.Duration

	limiter *rate.Limiter
	reqLock *semaphore.Weighted

	httpClient *http.Client
}

// NewClientParams contains configuration for creating a Client.
type NewClientParams struct {
	BaseURL string
	APIKey  string
	Model   string

	MaxConcurrentRequests int64
	RequestsPerSecond     float64

	MaxRetries     int
	RetryBaseDelay time.Duration
}

// NewClient creates a generation client for the configured endpoint.
func NewClient(params NewClientParams) *Client {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := params.Model
	if model == "" {
		model = defaultModel
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	retryBaseDelay := params.RetryBaseDelay
	if retryBaseDelay <= 0 {
		retryBaseDelay = defaultRetryBaseDelay
	}
	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	rps := params.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	return &Client{
		baseURL:        baseURL,
		apiKey:         params.APIKey,
		model:          model,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		limiter:        rate.NewLimiter(rate.Limit(rps), 1),
		reqLock:        semaphore.NewWeighted(maxConcurrent),
		httpClient:     &http.Client{Timeout: 60 * time.Second},
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// GenerateCompletion sends the prompt to the generation endpoint and
// returns the raw generated text. Transient 503 failures are retried with
// exponential backoff; every other failure propagates immediately.
func (c *Client) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	options := ai.GenerateOptions{Model: c.model}
	for _, opt := range opts {
		opt(&options)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.reqLock.Release(1)

	return util.RetryWithBackoff(ctx, c.maxRetries, c.retryBaseDelay,
		func(err error) bool { return errors.Is(err, ErrUnavailable) },
		func(ctx context.Context) (string, error) {
			return c.doGenerate(ctx, options, prompt)
		})
}

func (c *Client) doGenerate(ctx context.Context, options ai.GenerateOptions, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}
	if options.Temperature > 0 {
		reqBody.GenerationConfig = &generationConfig{Temperature: options.Temperature}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, options.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, util.Truncate(string(body), 200))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation returned status %d: %s", resp.StatusCode, util.Truncate(string(body), 200))
	}

	var envelope generateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEnvelope, err)
	}
	if len(envelope.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrEnvelope)
	}
	parts := envelope.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: candidate has no content parts", ErrEnvelope)
	}

	return parts[0].Text, nil
}
