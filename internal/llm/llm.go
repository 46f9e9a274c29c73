// Package llm provides the text-generation backend used for semantic parsing
// and CDK code generation. Requests follow the Anthropic messages format as
// accepted by Amazon Bedrock.
package llm

import (
	"context"
	"strings"
)

// AnthropicVersion is the wire version expected by the Bedrock Anthropic runtime.
const AnthropicVersion = "bedrock-2023-05-31"

// Content block types.
const (
	ContentText       = "text"
	ContentToolUse    = "tool_use"
	ContentToolResult = "tool_result"
)

// Invoker sends one model invocation and returns the model's response.
// Implementations perform exactly one attempt; retry policy belongs to callers.
type Invoker interface {
	Invoke(ctx context.Context, req *Request) (*Response, error)
}

// Request is the model invocation body.
type Request struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Messages         []Message `json:"messages"`
	Tools            []Tool    `json:"tools,omitempty"`
}

// Message is a single conversation turn.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one piece of a message: plain text, a tool-invocation
// request from the model, or a tool result fed back to it.
type ContentBlock struct {
	Type string `json:"type"`

	// text
	Text string `json:"text,omitempty"`

	// tool_use
	ID    string         `json:"id,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`

	// tool_result
	ToolUseID string         `json:"tool_use_id,omitempty"`
	Content   []ContentBlock `json:"content,omitempty"`
}

// Tool describes a callable tool advertised to the model.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"input_schema"`
}

// Response is the model's reply.
type Response struct {
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
}

// UserMessage builds a single-block user turn.
func UserMessage(text string) Message {
	return Message{
		Role:    "user",
		Content: []ContentBlock{{Type: ContentText, Text: text}},
	}
}

// NewRequest builds a request with the fixed Anthropic version set.
func NewRequest(maxTokens int, messages []Message, tools []Tool) *Request {
	return &Request{
		AnthropicVersion: AnthropicVersion,
		MaxTokens:        maxTokens,
		Messages:         messages,
		Tools:            tools,
	}
}

// Text joins all text blocks of the response with newlines.
func (r *Response) Text() string {
	var parts []string
	for _, c := range r.Content {
		if c.Type == ContentText {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ToolUse returns the first tool-invocation request in the response, if any.
func (r *Response) ToolUse() (*ContentBlock, bool) {
	for i := range r.Content {
		if r.Content[i].Type == ContentToolUse {
			return &r.Content[i], true
		}
	}
	return nil, false
}
