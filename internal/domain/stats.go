package domain

import (
	"fmt"
	"sync"
)

// costPerToken is the flat estimated USD cost accumulated per token.
const costPerToken = 0.00001

// NoRequestsMessage is the sentinel summary message when nothing was sent yet.
const NoRequestsMessage = "no requests made yet"

// UsageStats holds process-lifetime usage counters. All mutation is
// serialized through a mutex because batch workers record concurrently.
//
// Counting semantics: total_requests and successful_requests move together
// on each success, while failed_requests increments only when a call
// exhausts all retries. Individual retried attempts are never counted, so
// successful + failed does not account for intermediate failures.
type UsageStats struct {
	mu                 sync.Mutex
	totalRequests      int
	successfulRequests int
	failedRequests     int
	totalTokens        int
	totalCost          float64
}

// NewUsageStats creates a zeroed usage tracker. Counters are never reset
// except by constructing a new tracker.
func NewUsageStats() *UsageStats {
	return &UsageStats{}
}

// RecordSuccess registers one successful request, accumulating token usage
// and estimated cost when the response reports usage.
func (s *UsageStats) RecordSuccess(resp *MessageResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRequests++
	s.successfulRequests++

	if resp != nil && resp.Usage != nil {
		tokens := resp.Usage.Total()
		s.totalTokens += tokens
		s.totalCost += float64(tokens) * costPerToken
	}
}

// RecordExhaustion registers one request that failed after all retries.
func (s *UsageStats) RecordExhaustion() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failedRequests++
}

// Summary contains derived usage statistics.
type Summary struct {
	Message                 string  `json:"message,omitempty"`
	TotalRequests           int     `json:"total_requests"`
	SuccessRate             string  `json:"success_rate,omitempty"`
	AverageTokensPerRequest float64 `json:"average_tokens_per_request"`
	TotalTokens             int     `json:"total_tokens"`
	EstimatedCost           string  `json:"estimated_cost,omitempty"`
	FailedRequests          int     `json:"failed_requests"`
}

// Summarize derives summary statistics from the current counters.
// With zero recorded requests it returns the sentinel message instead of
// dividing by zero.
func (s *UsageStats) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totalRequests == 0 {
		return Summary{
			Message:        NoRequestsMessage,
			FailedRequests: s.failedRequests,
		}
	}

	successRate := float64(s.successfulRequests) / float64(s.totalRequests) * 100

	avgTokens := 0.0
	if s.successfulRequests > 0 {
		avgTokens = float64(s.totalTokens) / float64(s.successfulRequests)
	}

	return Summary{
		TotalRequests:           s.totalRequests,
		SuccessRate:             fmt.Sprintf("%.2f%%", successRate),
		AverageTokensPerRequest: avgTokens,
		TotalTokens:             s.totalTokens,
		EstimatedCost:           fmt.Sprintf("$%.4f", s.totalCost),
		FailedRequests:          s.failedRequests,
	}
}
