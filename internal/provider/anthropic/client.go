// Package anthropic implements the messages-API request sender: a thin HTTP
// client plus the retry loop that absorbs transient failures and feeds the
// usage tracker.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davidbz/ember/internal/domain"
)

const anthropicVersion = "2023-06-01"

// StatusError reports a non-200 reply from the API. The sender treats it as
// transient and retries without backoff.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.Code, e.Body)
}

// Client wraps the HTTP client for messages-API calls.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new messages-API HTTP client.
func NewClient(config Config) *Client {
	return &Client{
		apiKey:   config.APIKey,
		endpoint: config.Endpoint,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Do posts a single message request and decodes the reply. A non-200 status
// is returned as *StatusError; every other failure is a network-level error.
func (c *Client) Do(ctx context.Context, req *domain.MessageRequest) (*domain.MessageResponse, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var messageResp domain.MessageResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&messageResp); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	return &messageResp, nil
}

// IsStatusError reports whether err is a non-200 API status reply.
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}
