package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/domain"
)

func successResponse(tokens int) *domain.MessageResponse {
	return &domain.MessageResponse{
		ID:      "msg-1",
		Model:   "claude-opus-4-1-20250805",
		Content: []domain.ContentBlock{{Type: "text", Text: "hello"}},
		Usage:   &domain.Usage{TotalTokens: tokens},
	}
}

func TestUsageStats_RecordSuccess(t *testing.T) {
	stats := domain.NewUsageStats()

	stats.RecordSuccess(successResponse(100))

	summary := stats.Summarize()
	require.Empty(t, summary.Message)
	require.Equal(t, 1, summary.TotalRequests)
	require.Equal(t, "100.00%", summary.SuccessRate)
	require.Equal(t, 0, summary.FailedRequests)
	require.Equal(t, 100, summary.TotalTokens)
	require.InDelta(t, 100.0, summary.AverageTokensPerRequest, 0.0001)
	require.Equal(t, "$0.0010", summary.EstimatedCost)
}

func TestUsageStats_RecordSuccessWithoutUsage(t *testing.T) {
	stats := domain.NewUsageStats()

	stats.RecordSuccess(&domain.MessageResponse{ID: "msg-2"})

	summary := stats.Summarize()
	require.Equal(t, 1, summary.TotalRequests)
	require.Equal(t, 0, summary.TotalTokens)
	require.Equal(t, "$0.0000", summary.EstimatedCost)
}

func TestUsageStats_RecordExhaustion(t *testing.T) {
	stats := domain.NewUsageStats()

	// Exhaustion increments the failed counter only: total_requests is
	// untouched, so the zero-request sentinel still applies.
	stats.RecordExhaustion()

	summary := stats.Summarize()
	require.Equal(t, domain.NoRequestsMessage, summary.Message)
	require.Equal(t, 0, summary.TotalRequests)
	require.Equal(t, 1, summary.FailedRequests)
}

func TestUsageStats_SummarizeEmpty(t *testing.T) {
	stats := domain.NewUsageStats()

	summary := stats.Summarize()
	require.Equal(t, domain.NoRequestsMessage, summary.Message)
	require.Equal(t, 0, summary.TotalRequests)
	require.Empty(t, summary.SuccessRate)
}

func TestUsageStats_MixedOutcomes(t *testing.T) {
	stats := domain.NewUsageStats()

	stats.RecordSuccess(successResponse(40))
	stats.RecordSuccess(successResponse(60))
	stats.RecordExhaustion()

	summary := stats.Summarize()
	require.Equal(t, 2, summary.TotalRequests)
	require.Equal(t, "100.00%", summary.SuccessRate)
	require.Equal(t, 1, summary.FailedRequests)
	require.Equal(t, 100, summary.TotalTokens)
	require.InDelta(t, 50.0, summary.AverageTokensPerRequest, 0.0001)
}

func TestUsageStats_ConcurrentRecording(t *testing.T) {
	stats := domain.NewUsageStats()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for j := 0; j < workers; j++ {
		go func() {
			defer wg.Done()
			stats.RecordSuccess(successResponse(10))
		}()
	}
	wg.Wait()

	summary := stats.Summarize()
	require.Equal(t, workers, summary.TotalRequests)
	require.Equal(t, workers*10, summary.TotalTokens)
}

func TestUsage_Total(t *testing.T) {
	tests := []struct {
		name     string
		usage    domain.Usage
		expected int
	}{
		{
			name:     "explicit total wins",
			usage:    domain.Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 35},
			expected: 35,
		},
		{
			name:     "derived from input and output",
			usage:    domain.Usage{InputTokens: 10, OutputTokens: 20},
			expected: 30,
		},
		{
			name:     "zero usage",
			usage:    domain.Usage{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.usage.Total())
		})
	}
}
