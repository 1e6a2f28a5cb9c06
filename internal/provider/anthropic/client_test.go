package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/provider/anthropic"
)

func testConfig(endpoint string) anthropic.Config {
	return anthropic.Config{
		APIKey:        "test-key",
		Endpoint:      endpoint,
		Model:         "claude-opus-4-1-20250805",
		MaxTokens:     4096,
		Temperature:   0.7,
		TopP:          0.95,
		RetryAttempts: 3,
		Timeout:       5,
	}
}

func okBody() map[string]any {
	return map[string]any{
		"id":    "msg-123",
		"model": "claude-opus-4-1-20250805",
		"role":  "assistant",
		"content": []map[string]string{
			{"type": "text", "text": "Hello there"},
		},
		"usage": map[string]int{"input_tokens": 12, "output_tokens": 25},
	}
}

func TestClient_Do_SendsHeadersAndPayload(t *testing.T) {
	var gotReq domain.MessageRequest
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(okBody()))
	}))
	defer server.Close()

	client := anthropic.NewClient(testConfig(server.URL))

	req := &domain.MessageRequest{
		Model:       "claude-opus-4-1-20250805",
		Messages:    []domain.Message{{Role: "user", Content: "hi"}},
		MaxTokens:   1024,
		Temperature: 0.7,
		TopP:        0.95,
		System:      "be brief",
	}

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, "test-key", gotHeaders.Get("x-api-key"))
	require.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	require.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	require.Equal(t, "claude-opus-4-1-20250805", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	require.Equal(t, "user", gotReq.Messages[0].Role)
	require.Equal(t, "hi", gotReq.Messages[0].Content)
	require.Equal(t, 1024, gotReq.MaxTokens)
	require.Equal(t, "be brief", gotReq.System)

	require.Equal(t, "msg-123", resp.ID)
	require.Equal(t, "Hello there", resp.Text())
	require.Equal(t, 37, resp.Usage.Total())
}

func TestClient_Do_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"type":"error"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := anthropic.NewClient(testConfig(server.URL))

	_, err := client.Do(context.Background(), &domain.MessageRequest{
		Model:    "claude-opus-4-1-20250805",
		Messages: []domain.Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	require.True(t, anthropic.IsStatusError(err))
}

func TestClient_Do_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // Closed before use: every call is a connection error.

	client := anthropic.NewClient(testConfig(server.URL))

	_, err := client.Do(context.Background(), &domain.MessageRequest{
		Model:    "claude-opus-4-1-20250805",
		Messages: []domain.Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	require.False(t, anthropic.IsStatusError(err))
}

func TestClient_Do_MissingAPIKey(t *testing.T) {
	cfg := testConfig("http://localhost:0")
	cfg.APIKey = ""
	client := anthropic.NewClient(cfg)

	_, err := client.Do(context.Background(), &domain.MessageRequest{})
	require.ErrorIs(t, err, domain.ErrMissingAPIKey)
}
