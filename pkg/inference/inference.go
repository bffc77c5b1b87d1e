package inference

import (
	"context"
	"fmt"

	"cameo/pkg/schema"
)

// ToolChoice tells the model whether it must call one of the declared tools.
type ToolChoice string

const (
	ToolChoiceNone     ToolChoice = ""
	ToolChoiceAuto     ToolChoice = "auto"
	ToolChoiceRequired ToolChoice = "required"
)

// Request is one provider-agnostic model invocation.
type Request struct {
	// Model overrides the inferencer's default model when set.
	Model      string
	Messages   []schema.ChatTurn
	Tools      []schema.Tool
	ToolChoice ToolChoice
	// MaxTokens caps generated tokens; zero leaves the provider default.
	MaxTokens int64
}

// ToolCall is a structured invocation emitted by the model. Arguments is
// whatever the provider handed back: a JSON string for OpenAI-compatible
// APIs, a decoded map for Gemini.
type ToolCall struct {
	ID        string
	Name      string
	Arguments any
}

// Response holds either free text, tool calls, or both.
type Response struct {
	Text      string
	ToolCalls []ToolCall
}

// Inferencer runs a single blocking round trip against a remote model.
type Inferencer interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// UpstreamError wraps any failure reported by, or while reaching, a provider.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s inference error (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s inference error: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) HTTPStatusCode() int {
	return e.StatusCode
}
