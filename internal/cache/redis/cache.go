// Package redis implements an exact-match response cache on Redis.
// Entries are keyed by a digest of the full request so only identical
// prompts with identical parameters hit.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
)

const keyPrefix = "ember:response:"

// ResponseCache implements domain.ResponseCache backed by Redis.
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache creates a Redis-backed response cache.
func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

// Get returns the cached response for req, or domain.ErrCacheMiss.
func (c *ResponseCache) Get(
	ctx context.Context,
	req *domain.MessageRequest,
) (*domain.MessageResponse, error) {
	key := cacheKey(req)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var resp domain.MessageResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached response: %w", err)
	}

	observability.FromContext(ctx).Debug("cache hit",
		observability.String("key", key))

	return &resp, nil
}

// Set stores a response for req with the given TTL.
func (c *ResponseCache) Set(
	ctx context.Context,
	req *domain.MessageRequest,
	resp *domain.MessageResponse,
	ttl time.Duration,
) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(req), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}

// cacheKey digests every request field that affects the response.
func cacheKey(req *domain.MessageRequest) string {
	var b strings.Builder
	b.WriteString(req.Model)
	b.WriteByte('|')
	b.WriteString(req.System)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(req.MaxTokens))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(req.Temperature, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(req.TopP, 'f', -1, 64))
	for _, msg := range req.Messages {
		b.WriteByte('|')
		b.WriteString(msg.Role)
		b.WriteByte(':')
		b.WriteString(msg.Content)
	}

	digest := sha256.Sum256([]byte(b.String()))
	return keyPrefix + hex.EncodeToString(digest[:])
}
