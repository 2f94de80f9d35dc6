// Package cloudapi implements the HTTP client for the Tidecloud
// control-plane REST API.
//
// The client is deliberately untyped on the response side: whatever JSON the
// upstream returns is decoded into a generic value and handed back as-is.
// Plain-text and bodyless responses are normalized into small wrapper values
// so callers always receive something JSON-serializable.
package cloudapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tidecloud/tidebridge/pkg/domain"
	"github.com/tidecloud/tidebridge/pkg/ports"
)

// DefaultBaseURL is the production control-plane endpoint.
const DefaultBaseURL = "https://api.tidecloud.com"

// Client calls the control-plane REST API. Construct with New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.Caller = (*Client)(nil)

type Option func(*Client)

// WithBaseURL points the client at a different endpoint, e.g. a local test server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client against the production endpoint.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call performs one authenticated request and normalizes the response.
//
// A non-nil body is serialized as JSON for POST and PATCH; GET and DELETE
// never carry a body even when one is supplied. The Basic-Auth header is
// recomputed on every call so rotated credentials take effect immediately.
// Extra header values override the defaults, which lets a tool request
// text/plain instead of JSON.
func (c *Client) Call(ctx context.Context, method, path string, creds domain.Credentials, body any, header http.Header) (any, error) {
	var reqBody io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPatch) {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.SetBasicAuth(creds.KeyID, creds.KeySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Bodies are never logged; they may echo secrets.
		c.logger.Error("upstream call failed", "method", method, "path", path, "error", err)
		return nil, &UpstreamError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	value, err := c.decode(resp)
	if err != nil {
		c.logger.Error("upstream call failed", "method", method, "path", path, "status", resp.StatusCode, "error", err)
		return nil, err
	}
	return value, nil
}

// decode applies the response rules in order; the first matching rule wins.
func (c *Client) decode(resp *http.Response) (any, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: "failed to read response body", Err: err}
	}

	success := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices

	// 1. Plain-text responses bypass JSON handling entirely.
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		if !success {
			message := strings.TrimSpace(string(raw))
			if message == "" {
				message = resp.Status
			}
			return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: message}
		}
		return PlainText{PlainTextResponse: string(raw)}, nil
	}

	// 2. Bodyless responses are the upstream convention for accepted state
	// changes (e.g. delete), not a decode failure.
	if resp.StatusCode == http.StatusNoContent || resp.ContentLength == 0 {
		return NoContent{Status: resp.StatusCode, Message: "Operation successful (No Content)"}, nil
	}

	// 3. Anything else must parse as JSON.
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unparsable response: %s", strings.TrimSpace(string(raw))),
			Err:        err,
		}
	}

	// 4. Non-2xx statuses fail with the best message the body offers.
	if !success {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: upstreamMessage(value, raw, resp.Status)}
	}
	return value, nil
}

// upstreamMessage pulls a human-readable message out of an error body:
// the "error" or "message" field when present, else the raw body, else the
// HTTP status line.
func upstreamMessage(value any, raw []byte, fallback string) string {
	if obj, ok := value.(map[string]any); ok {
		for _, key := range []string{"error", "message"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fallback
}
