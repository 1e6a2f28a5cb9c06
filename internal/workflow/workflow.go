// Package workflow executes named multi-step automation sequences built
// from prompt, batch, and condition steps.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/davidbz/ember/internal/batch"
	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
)

// StepKind identifies what a workflow step does.
type StepKind string

const (
	// StepPrompt renders Content against the context and sends it.
	StepPrompt StepKind = "prompt"

	// StepBatch dispatches Prompts through the batch dispatcher.
	StepBatch StepKind = "batch"

	// StepCondition evaluates Condition and, when true, executes
	// TrueWorkflow and appends its results.
	StepCondition StepKind = "condition"
)

// Step is a single descriptor in a workflow definition.
type Step struct {
	Kind         StepKind
	Content      string   // prompt template, {key} placeholders resolved from context
	Prompts      []string // batch prompts
	Condition    string   // predicate, see predicate.go
	TrueWorkflow string   // sub-workflow run when Condition holds
}

// Engine holds registered workflows and executes them.
// Definitions are read-only during execution. Condition steps may invoke
// workflows recursively; there is no cycle detection, so callers must avoid
// mutually-triggering definitions.
type Engine struct {
	sender     domain.MessageSender
	dispatcher *batch.Dispatcher

	mu        sync.RWMutex
	workflows map[string][]Step
}

// NewEngine creates a workflow engine.
func NewEngine(sender domain.MessageSender, dispatcher *batch.Dispatcher) *Engine {
	return &Engine{
		sender:     sender,
		dispatcher: dispatcher,
		workflows:  make(map[string][]Step),
	}
}

// Register stores a named workflow definition, replacing any previous one.
func (e *Engine) Register(name string, steps []Step) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.workflows[name] = steps
}

// Execute runs a registered workflow against the given context values and
// returns the accumulated step results. An unregistered name fails
// immediately with ErrWorkflowNotFound.
func (e *Engine) Execute(
	ctx context.Context,
	name string,
	workflowCtx map[string]string,
) ([]*domain.MessageResponse, error) {
	e.mu.RLock()
	steps, exists := e.workflows[name]
	e.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorkflowNotFound, name)
	}

	if workflowCtx == nil {
		workflowCtx = map[string]string{}
	}

	ctx = observability.WithWorkflow(ctx, name)
	logger := observability.FromContext(ctx)
	logger.Info("executing workflow", observability.Int("steps", len(steps)))

	var results []*domain.MessageResponse

	for i, step := range steps {
		switch step.Kind {
		case StepPrompt:
			resp, err := e.sender.Send(ctx, renderTemplate(step.Content, workflowCtx), nil)
			if err != nil {
				return nil, fmt.Errorf("workflow %s step %d: %w", name, i, err)
			}
			results = append(results, resp)

		case StepBatch:
			results = append(results, e.dispatcher.Process(ctx, step.Prompts, nil)...)

		case StepCondition:
			hold, err := evalPredicate(step.Condition, predicateEnv{
				Context: workflowCtx,
				Results: results,
			})
			if err != nil {
				return nil, fmt.Errorf("workflow %s step %d: %w", name, i, err)
			}
			if !hold {
				continue
			}

			subResults, err := e.Execute(ctx, step.TrueWorkflow, workflowCtx)
			if err != nil {
				return nil, fmt.Errorf("workflow %s step %d: %w", name, i, err)
			}
			results = append(results, subResults...)

		default:
			return nil, fmt.Errorf("workflow %s step %d: unknown step kind %q", name, i, step.Kind)
		}
	}

	return results, nil
}

// renderTemplate substitutes {key} placeholders with context values.
func renderTemplate(content string, workflowCtx map[string]string) string {
	for key, value := range workflowCtx {
		content = strings.ReplaceAll(content, "{"+key+"}", value)
	}
	return content
}
