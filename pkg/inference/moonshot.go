package inference

import (
	"github.com/openai/openai-go/v3/option"
)

// NewMoonshotInferencer creates an inferencer for Moonshot AI (Kimi).
func NewMoonshotInferencer(apiKey string, model string, opts ...option.RequestOption) *OpenAIInferencer {
	if model == "" {
		model = "kimi-k2-5"
	}
	opts = append([]option.RequestOption{option.WithBaseURL("https://api.moonshot.ai/v1")}, opts...)
	return newCompatibleInferencer("moonshot", apiKey, model, opts...)
}
