package argilla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RawResponse holds an unprocessed API response for passthrough commands.
type RawResponse struct {
	StatusCode int
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Get performs a raw GET against an arbitrary API path.
func (c *Client) Get(ctx context.Context, path string) (*RawResponse, error) {
	return c.raw(ctx, http.MethodGet, path, nil)
}

// Post performs a raw POST with a JSON payload against an arbitrary API path.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*RawResponse, error) {
	return c.raw(ctx, http.MethodPost, path, body)
}

func (c *Client) raw(ctx context.Context, method, path string, body []byte) (*RawResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	raw := &RawResponse{StatusCode: resp.StatusCode, Body: data}

	var jsonData any
	if err := json.Unmarshal(data, &jsonData); err == nil {
		raw.IsJSON = true
		raw.JSONData = jsonData
	}

	return raw, nil
}
