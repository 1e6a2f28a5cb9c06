package domain

// Message represents a single conversational message.
type Message struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// MessageRequest represents a single outbound call to the messages API.
// Instances are built per call and discarded after the response or final failure.
type MessageRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	TopP        float64   `json:"top_p,omitempty"`
	System      string    `json:"system,omitempty"`
}

// ContentBlock is one element of a response's content array.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Usage tracks token consumption reported by the API.
type Usage struct {
	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
	TotalTokens  int `json:"total_tokens,omitempty"`
}

// Total returns the reported total token count, deriving it from the
// input/output counts when the API omits the total field.
func (u Usage) Total() int {
	if u.TotalTokens > 0 {
		return u.TotalTokens
	}
	return u.InputTokens + u.OutputTokens
}

// MessageResponse represents the decoded API reply.
type MessageResponse struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	Role       string         `json:"role,omitempty"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
	Usage      *Usage         `json:"usage,omitempty"`
}

// Text returns the text of the first content block, or the empty string
// when the response carries no content.
func (r *MessageResponse) Text() string {
	if r == nil {
		return ""
	}
	for _, block := range r.Content {
		if block.Type == "text" || block.Text != "" {
			return block.Text
		}
	}
	return ""
}

// SendOptions carries the per-call overrides accepted by a MessageSender.
// A nil SendOptions means "use the configured defaults".
type SendOptions struct {
	// System is an optional instruction shaping model behavior.
	System string

	// MaxTokens overrides the configured max token limit when > 0.
	MaxTokens int
}
