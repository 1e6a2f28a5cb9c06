// Package batch fans prompts out to a MessageSender on a bounded worker
// pool and fans results back in, preserving submission order.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
)

const defaultMaxWorkers = 5

// Dispatcher runs a MessageSender concurrently across many prompts.
type Dispatcher struct {
	sender     domain.MessageSender
	maxWorkers int
}

// NewDispatcher creates a dispatcher with the given parallelism.
// maxWorkers <= 0 falls back to the default of 5.
func NewDispatcher(sender domain.MessageSender, maxWorkers int) *Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	return &Dispatcher{
		sender:     sender,
		maxWorkers: maxWorkers,
	}
}

// Process sends every prompt through the sender with bounded parallelism.
// The returned slice always has len(prompts) entries positionally aligned
// with the input, regardless of completion order: each worker writes its
// own index. A per-prompt failure is logged and leaves nil at that index;
// it never aborts sibling prompts.
func (d *Dispatcher) Process(
	ctx context.Context,
	prompts []string,
	opts *domain.SendOptions,
) []*domain.MessageResponse {
	logger := observability.FromContext(ctx)
	logger.Info("starting batch processing",
		observability.Int("prompts", len(prompts)),
		observability.Int("max_workers", d.maxWorkers))

	results := make([]*domain.MessageResponse, len(prompts))

	group := new(errgroup.Group)
	group.SetLimit(d.maxWorkers)

	for i, prompt := range prompts {
		i, prompt := i, prompt
		group.Go(func() error {
			resp, err := d.sender.Send(ctx, prompt, opts)
			if err != nil {
				logger.Error("failed to process prompt",
					observability.Int("index", i),
					observability.Error(err))
				return nil
			}
			results[i] = resp
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes completion.
	_ = group.Wait()

	return results
}
