package domain

import "errors"

var (
	// ErrRetriesExhausted is returned after all delivery attempts fail.
	// The status and body of the last attempt are intentionally not carried:
	// retryable failures are absorbed inside the sender and never surfaced
	// individually.
	ErrRetriesExhausted = errors.New("failed to get response from messages API")

	// ErrCacheMiss indicates the response cache holds no entry for a request.
	ErrCacheMiss = errors.New("cache miss")

	// ErrWorkflowNotFound indicates an unregistered workflow name.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrMissingAPIKey indicates the API key environment variable is unset.
	ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY environment variable not set")
)
