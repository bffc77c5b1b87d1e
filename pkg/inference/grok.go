package inference

import (
	"github.com/openai/openai-go/v3/option"
)

// NewGrokInferencer creates an inferencer for xAI's OpenAI-compatible API.
func NewGrokInferencer(apiKey string, model string, opts ...option.RequestOption) *OpenAIInferencer {
	if model == "" {
		model = "grok-4-fast-reasoning"
	}
	opts = append([]option.RequestOption{option.WithBaseURL("https://api.x.ai/v1")}, opts...)
	return newCompatibleInferencer("grok", apiKey, model, opts...)
}
