// Package firebase is a typed client for the Firebase Realtime Database REST
// API. Every call maps to {method} {base}/{path}.json; there is no retry,
// batching or caching.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAuthToken appends ?auth=<token> to every request. The database is public
// by default, so this is usually left unset.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithTimeout bounds every request. It applies to a copy of the HTTP client,
// whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse firebase url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("firebase url must be http(s), got %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// Get decodes the JSON at path into out. A null answer yields ErrNotFound and
// leaves out untouched.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	data, err := c.GetRaw(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if isNull(data) {
		return nil, ErrNotFound
	}
	return data, nil
}

// Post appends v under path and returns the generated child key.
func (c *Client) Post(ctx context.Context, path string, v any) (string, error) {
	data, err := c.do(ctx, http.MethodPost, path, v)
	if err != nil {
		return "", err
	}
	var resp struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode post response: %w", err)
	}
	if resp.Name == "" {
		return "", fmt.Errorf("firebase POST %s: empty key in response", path)
	}
	return resp.Name, nil
}

func (c *Client) Put(ctx context.Context, path string, v any) error {
	_, err := c.do(ctx, http.MethodPut, path, v)
	return err
}

func (c *Client) Patch(ctx context.Context, path string, v any) error {
	_, err := c.do(ctx, http.MethodPatch, path, v)
	return err
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", method, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firebase %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    errorMessage(data),
		}
	}
	return data, nil
}

func (c *Client) endpoint(path string) string {
	segs := SplitPath(path)
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}

	u := c.baseURL + "/" + strings.Join(segs, "/") + ".json"
	if c.authToken != "" {
		u += "?auth=" + url.QueryEscape(c.authToken)
	}
	return u
}

// SplitPath turns "tasks/-Nab/Subtasks" into its segments, ignoring empty ones.
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// Join builds a database path from segments.
func Join(segs ...string) string {
	return strings.Join(segs, "/")
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}
