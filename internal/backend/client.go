// Package backend is the HTTP client for the remote plan generator.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/skillforge/internal/plan"
)

// DefaultBaseURL is where the plan generator listens by default.
const DefaultBaseURL = "http://127.0.0.1:8000"

// DefaultTimeout bounds a request when the caller configures nothing
// else. Plan generation on the backend is one LLM call and can be slow.
const DefaultTimeout = 120 * time.Second

const (
	generatePath    = "/api/generate-plan"
	contentTypeJSON = "application/json"
	maxBodyBytes    = 4 << 20
)

// Client talks to the plan generation backend. It sends exactly one
// request per call and never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Nil restores the
// default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the overall timeout of each request. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		var hc http.Client
		if c.http != nil {
			hc = *c.http
		}
		hc.Timeout = d
		c.http = &hc
	}
}

// New creates a client for baseURL. An empty baseURL uses DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type generateRequest struct {
	Goal string `json:"goal"`
}

// Forge posts goal to the generate endpoint and decodes the returned plan.
// The body is trusted as-is beyond JSON decoding.
func (c *Client) Forge(ctx context.Context, goal string) (*plan.LearningPlan, error) {
	payload, err := json.Marshal(generateRequest{Goal: goal})
	if err != nil {
		return nil, fmt.Errorf("backend: encode request: %w", err)
	}

	var out plan.LearningPlan
	if err := c.doJSON(ctx, http.MethodPost, generatePath, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping fetches the backend root and returns its status line.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if payload != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, req.URL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("backend: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       raw,
		}
	}

	if err := decode(raw, out); err != nil {
		return &DecodeError{Body: raw, Err: err}
	}
	return nil
}

func decode(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}
