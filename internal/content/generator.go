// Package content builds prompt templates for common content types and
// composes the message sender into generation helpers.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/davidbz/ember/internal/domain"
)

// Type is a closed enumeration of supported content types. Unknown inputs
// fall back to TypeGeneric.
type Type int

const (
	TypeGeneric Type = iota
	TypeBlogPost
	TypeCode
	TypeAnalysis
	TypeMarketing
)

// ParseType maps a content-type name to its enumeration value, falling
// back to TypeGeneric for unknown names.
func ParseType(name string) Type {
	switch name {
	case "blog_post":
		return TypeBlogPost
	case "code":
		return TypeCode
	case "analysis":
		return TypeAnalysis
	case "marketing":
		return TypeMarketing
	default:
		return TypeGeneric
	}
}

// String returns the canonical name of the content type.
func (t Type) String() string {
	switch t {
	case TypeBlogPost:
		return "blog_post"
	case TypeCode:
		return "code"
	case TypeAnalysis:
		return "analysis"
	case TypeMarketing:
		return "marketing"
	default:
		return "generic"
	}
}

// templateFor returns the prompt-building function for a content type.
func templateFor(t Type) func(topic, requirements string) string {
	switch t {
	case TypeBlogPost:
		return func(topic, requirements string) string {
			return fmt.Sprintf(`Write a comprehensive blog post about %s.
Requirements: %s
Include: engaging title, introduction, main points, conclusion, and CTA.`, topic, requirements)
		}
	case TypeCode:
		return func(topic, requirements string) string {
			return fmt.Sprintf(`Generate production-ready code for %s.
Requirements: %s
Include: documentation, error handling, and best practices.`, topic, requirements)
		}
	case TypeAnalysis:
		return func(topic, requirements string) string {
			return fmt.Sprintf(`Provide a detailed analysis of %s.
Requirements: %s
Include: data insights, recommendations, and action items.`, topic, requirements)
		}
	case TypeMarketing:
		return func(topic, requirements string) string {
			return fmt.Sprintf(`Create marketing content for %s.
Requirements: %s
Include: headlines, value propositions, and call-to-action.`, topic, requirements)
		}
	default:
		return func(topic, _ string) string {
			return fmt.Sprintf("Generate content about %s", topic)
		}
	}
}

// Generator produces content by composing templates with a MessageSender.
type Generator struct {
	sender domain.MessageSender
}

// NewGenerator creates a content generator.
func NewGenerator(sender domain.MessageSender) *Generator {
	return &Generator{sender: sender}
}

// Generate renders the template for contentType with the topic and the
// JSON-serialized requirements, sends it, and returns the first content
// block's text.
func (g *Generator) Generate(
	ctx context.Context,
	contentType Type,
	topic string,
	requirements map[string]any,
) (string, error) {
	if requirements == nil {
		requirements = map[string]any{}
	}

	reqJSON, err := json.Marshal(requirements)
	if err != nil {
		return "", fmt.Errorf("failed to serialize requirements: %w", err)
	}

	prompt := templateFor(contentType)(topic, string(reqJSON))

	resp, err := g.sender.Send(ctx, prompt, nil)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", errors.New("response contained no content blocks")
	}

	return resp.Content[0].Text, nil
}

// OptimizePrompt asks the model for an improved version of a prompt.
// goal defaults to "clarity". The raw response text is returned unvalidated;
// the caller must trust the model followed the "return only" instruction.
func (g *Generator) OptimizePrompt(
	ctx context.Context,
	original string,
	goal string,
) (string, error) {
	if goal == "" {
		goal = "clarity"
	}

	prompt := fmt.Sprintf(`Optimize the following prompt for %s:

Original prompt: %s

Provide an improved version that is:
1. More clear and specific
2. Structured better
3. Likely to produce better results

Return only the optimized prompt.`, goal, original)

	resp, err := g.sender.Send(ctx, prompt, nil)
	if err != nil {
		return "", fmt.Errorf("prompt optimization failed: %w", err)
	}

	return resp.Text(), nil
}
