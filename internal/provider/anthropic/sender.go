package anthropic

import (
	"context"
	"errors"
	"time"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
)

// Sender implements domain.MessageSender against the messages API.
// Non-200 replies are retried immediately; network-level failures back off
// 2^attempt seconds between attempts. The backoff blocks the calling
// goroutine only, so batch workers sleep independently.
type Sender struct {
	cfg      Config
	client   *Client
	stats    domain.UsageRecorder
	cache    domain.ResponseCache // nil disables caching
	cacheTTL time.Duration
	sleep    func(time.Duration)
}

// NewSender creates a message sender. cache may be nil.
func NewSender(
	cfg Config,
	client *Client,
	stats domain.UsageRecorder,
	cache domain.ResponseCache,
	cacheTTL time.Duration,
) *Sender {
	return &Sender{
		cfg:      cfg,
		client:   client,
		stats:    stats,
		cache:    cache,
		cacheTTL: cacheTTL,
		sleep:    time.Sleep,
	}
}

// Send delivers one prompt, retrying up to the configured attempt count.
// The first 200 response wins: it is recorded on the tracker and returned
// with no further attempts. Exhaustion increments the failed-request
// counter and returns domain.ErrRetriesExhausted; the status and body of
// the last attempt are not propagated.
func (s *Sender) Send(
	ctx context.Context,
	prompt string,
	opts *domain.SendOptions,
) (*domain.MessageResponse, error) {
	req := s.buildRequest(prompt, opts)

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)

	if s.cache != nil {
		cached, cacheErr := s.cache.Get(ctx, req)
		if cacheErr == nil {
			logger.Info("cache HIT - returning cached response")
			return cached, nil
		}
		if !errors.Is(cacheErr, domain.ErrCacheMiss) {
			logger.Warn("cache get failed, continuing without cache",
				observability.Error(cacheErr))
		}
	}

	for attempt := 0; attempt < s.cfg.RetryAttempts; attempt++ {
		resp, err := s.client.Do(ctx, req)
		if err == nil {
			s.stats.RecordSuccess(resp)
			s.storeInCache(ctx, req, resp)
			return resp, nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			logger.Warn("API error",
				observability.Int("status", statusErr.Code),
				observability.String("body", statusErr.Body))
			continue
		}

		logger.Error("request failed",
			observability.Int("attempt", attempt+1),
			observability.Error(err))
		s.sleep(time.Duration(1<<attempt) * time.Second)
	}

	s.stats.RecordExhaustion()
	return nil, domain.ErrRetriesExhausted
}

// buildRequest merges the prompt and per-call overrides with the configured
// sampling defaults. Explicit override wins over configured default.
func (s *Sender) buildRequest(prompt string, opts *domain.SendOptions) *domain.MessageRequest {
	req := &domain.MessageRequest{
		Model:       s.cfg.Model,
		Messages:    []domain.Message{{Role: "user", Content: prompt}},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		TopP:        s.cfg.TopP,
	}

	if opts != nil {
		if opts.MaxTokens > 0 {
			req.MaxTokens = opts.MaxTokens
		}
		req.System = opts.System
	}

	return req
}

func (s *Sender) storeInCache(ctx context.Context, req *domain.MessageRequest, resp *domain.MessageResponse) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, req, resp, s.cacheTTL); err != nil {
		observability.FromContext(ctx).Warn("failed to store in cache",
			observability.Error(err))
	}
}
