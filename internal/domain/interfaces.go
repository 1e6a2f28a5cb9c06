package domain

import (
	"context"
	"time"
)

// MessageSender sends a single prompt to the conversational API.
type MessageSender interface {
	// Send delivers one prompt and returns the decoded response.
	// It retries transient failures internally; only total exhaustion
	// surfaces an error.
	Send(ctx context.Context, prompt string, opts *SendOptions) (*MessageResponse, error)
}

// UsageRecorder accumulates request outcomes.
type UsageRecorder interface {
	// RecordSuccess registers a successful request and its token usage.
	RecordSuccess(resp *MessageResponse)

	// RecordExhaustion registers a request that failed after all retries.
	RecordExhaustion()
}

// ResponseCache stores responses keyed by the exact request that produced them.
type ResponseCache interface {
	// Get returns the cached response for req, or ErrCacheMiss.
	Get(ctx context.Context, req *MessageRequest) (*MessageResponse, error)

	// Set stores a response for req with the given TTL.
	Set(ctx context.Context, req *MessageRequest, resp *MessageResponse, ttl time.Duration) error
}

// PricingRegistry maintains per-unit prices for billable service types.
type PricingRegistry interface {
	// GetPrice returns the per-unit USD price for a service type.
	GetPrice(ctx context.Context, serviceType string) (float64, error)

	// RegisterPrice adds or overwrites the price for a service type.
	RegisterPrice(ctx context.Context, serviceType string, perUnitUSD float64) error
}
