// Package echo provides a deterministic in-memory MessageSender for testing
// and development. It echoes the prompt back without external API calls.
package echo

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/davidbz/ember/internal/domain"
)

const modelName = "echo-1"

// Sender implements domain.MessageSender entirely in memory.
type Sender struct {
	// FailPrompts lists prompts that fail with ErrRetriesExhausted.
	FailPrompts map[string]bool

	calls atomic.Int64
}

// NewSender creates a new echo sender.
func NewSender() *Sender {
	return &Sender{FailPrompts: make(map[string]bool)}
}

// Send echoes the prompt back as the response text. Prompts listed in
// FailPrompts fail the way a real sender does after exhausting retries.
func (s *Sender) Send(
	_ context.Context,
	prompt string,
	opts *domain.SendOptions,
) (*domain.MessageResponse, error) {
	n := s.calls.Add(1)

	if s.FailPrompts[prompt] {
		return nil, domain.ErrRetriesExhausted
	}

	text := prompt
	if opts != nil && opts.System != "" {
		text = fmt.Sprintf("[%s] %s", opts.System, prompt)
	}

	tokens := len(strings.Fields(text))

	return &domain.MessageResponse{
		ID:         fmt.Sprintf("echo-%d", n),
		Model:      modelName,
		Role:       "assistant",
		Content:    []domain.ContentBlock{{Type: "text", Text: text}},
		StopReason: "end_turn",
		Usage: &domain.Usage{
			InputTokens:  tokens,
			OutputTokens: tokens,
		},
	}, nil
}

// Calls returns the number of Send invocations.
func (s *Sender) Calls() int {
	return int(s.calls.Load())
}
