// Package api is the typed client for the remote commerce API. It attaches
// bearer credentials, encodes request bodies and translates HTTP failures into
// errors the stores can surface directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TokenFunc yields the current session's bearer token, or "" when anonymous.
type TokenFunc func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
	logger  *zap.Logger
}

func NewClient(baseURL string, token TokenFunc, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
		logger:  logger,
	}
}

// APIError is a non-2xx response from the commerce API. Message is the
// server's explanation when it sent one, otherwise the caller's fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

var ErrNotFound = errors.New("resource not found")

// do issues the request and decodes the JSON response into out (skipped when
// out is nil). fallback is the error message used when the server's body
// carries no "message" field.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	return c.doWithHeader(ctx, method, path, body, out, fallback, "", "")
}

// doWithHeader is do plus one extra request header (ignored when the name is
// empty).
func (c *Client) doWithHeader(ctx context.Context, method, path string, body, out any, fallback, headerName, headerValue string) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if headerName != "" {
		req.Header.Set(headerName, headerValue)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &APIError{StatusCode: 0, Message: fallback}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp, method, path, fallback)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response, method, path, fallback string) error {
	var payload struct {
		Message string `json:"message"`
	}
	message := fallback
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		message = payload.Message
	}
	c.logger.Warn("api error response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message))
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
