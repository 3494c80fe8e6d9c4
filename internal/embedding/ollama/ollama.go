// Package ollama provides an embedding backend using an Ollama (or
// OpenAI-compatible) embeddings endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"medrag/internal/domain"
)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "nomic-embed-text"
	DefaultTimeout = 30 * time.Second
)

// Config configures the embeddings client.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to the embeddings endpoint. Its dimensionality is learned from
// the first successful response and then enforced for the instance lifetime.
type Client struct {
	baseURL    string
	model      string
	client     *http.Client
	dimension  int
	maxRetries int
}

// New creates a new embeddings client using the provided configuration.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		client:     &http.Client{Timeout: cfg.Timeout},
		maxRetries: 5,
	}
}

// Name returns the model identifier served by this client.
func (c *Client) Name() string { return c.model }

// Prepare is a no-op: the model is pretrained, no corpus pass is needed.
func (c *Client) Prepare(corpus []string) error { return nil }

// Dimension returns the vector dimensionality, zero until the first embed.
func (c *Client) Dimension() int { return c.dimension }

// EmbedBatch embeds every text in order. The endpoint has no batch API, so
// texts are embedded one by one; any single failure fails the whole batch.
// Vectors are L2-normalized on receipt.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := c.embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("%w: text %d: %v", domain.ErrEncoding, i, err)
		}
		if c.dimension == 0 {
			c.dimension = len(vec)
		}
		if len(vec) != c.dimension {
			return nil, fmt.Errorf("text %d has %d dimensions, want %d: %w",
				i, len(vec), c.dimension, domain.ErrDimensionMismatch)
		}
		normalize(vec)
		out[i] = vec
	}
	return out, nil
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt,omitempty"`
	Input  string `json:"input,omitempty"`
}

func (c *Client) embed(ctx context.Context, text string) ([]float64, error) {
	body, _ := json.Marshal(embedRequest{Model: c.model, Prompt: text, Input: text})
	url := c.baseURL + "/api/embeddings"

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay(attempt - 1)):
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		payload, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("embeddings request failed: %s", resp.Status)
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(time.Duration(secs) * time.Second):
				}
			}
			continue
		}
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("embeddings request failed: %s: %s", resp.Status, payload)
		}
		if readErr != nil {
			lastErr = readErr
			continue
		}
		if vec, ok := decodeEmbedding(payload); ok {
			return vec, nil
		}
		lastErr = fmt.Errorf("no embedding in response")
	}
	return nil, lastErr
}

// decodeEmbedding accepts both the Ollama-native shape {"embedding": [...]}
// and the OpenAI-compatible shape {"data": [{"embedding": [...]}]}.
func decodeEmbedding(payload []byte) ([]float64, bool) {
	var native struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(payload, &native); err == nil && len(native.Embedding) > 0 {
		return native.Embedding, true
	}
	var compat struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &compat); err == nil &&
		len(compat.Data) > 0 && len(compat.Data[0].Embedding) > 0 {
		return compat.Data[0].Embedding, true
	}
	return nil, false
}

func normalize(vec []float64) {
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i] /= norm
	}
}

func retryDelay(attempt int) time.Duration {
	base := 200 * time.Millisecond
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
