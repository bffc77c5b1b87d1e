package inference

import (
	"cmp"
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"cameo/pkg/schema"
)

// OpenAIInferencer implements Inferencer using OpenAI's official Go SDK.
// It also serves OpenAI-compatible vendors through a different base URL.
type OpenAIInferencer struct {
	client   *openai.Client
	provider string
	apiKey   string
	model    string
	opts     []option.RequestOption
}

// NewOpenAIInferencer creates a new inferencer instance using OpenAI client.
func NewOpenAIInferencer(apiKey string, model string, opts ...option.RequestOption) *OpenAIInferencer {
	return newCompatibleInferencer("openai", apiKey, model, opts...)
}

func newCompatibleInferencer(provider, apiKey, model string, opts ...option.RequestOption) *OpenAIInferencer {
	o := &OpenAIInferencer{
		provider: provider,
		apiKey:   apiKey,
		model:    model,
		opts:     opts,
	}
	o.rebuild()
	return o
}

// rebuild recreates the client. Failures are reported to the caller, so SDK
// retries stay off.
func (o *OpenAIInferencer) rebuild() {
	opts := []option.RequestOption{
		option.WithAPIKey(o.apiKey),
		option.WithMaxRetries(0),
	}
	client := openai.NewClient(append(opts, o.opts...)...)
	o.client = &client
}

func (o *OpenAIInferencer) ChangeBaseURL(baseURL string) {
	o.opts = append(o.opts, option.WithBaseURL(baseURL))
	o.rebuild()
}

func (o *OpenAIInferencer) SetModel(model string) {
	o.model = model
}

func (o *OpenAIInferencer) Provider() string {
	return o.provider
}

// Complete sends the conversation to the chat completion endpoint.
func (o *OpenAIInferencer) Complete(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("nil inference request")
	}

	params := openai.ChatCompletionNewParams{
		Model:    cmp.Or(req.Model, o.model),
		Messages: openAIMessages(req.Messages),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}
	for _, tool := range req.Tools {
		params.Tools = append(params.Tools, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        tool.Name,
			Description: openai.String(tool.Description),
			Parameters:  tool.Parameters,
		}))
	}
	if len(params.Tools) > 0 && req.ToolChoice != ToolChoiceNone {
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String(string(req.ToolChoice)),
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, o.upstream(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &UpstreamError{Provider: o.provider, Err: errors.New("no choices returned")}
	}

	msg := resp.Choices[0].Message
	out := &Response{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

func (o *OpenAIInferencer) upstream(err error) error {
	ue := &UpstreamError{Provider: o.provider, Err: err}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		ue.StatusCode = apiErr.StatusCode
	}
	return ue
}

// openAIMessages maps turns onto typed message params. Tool turns need the
// id of the call they answer; without one they are sent as assistant text.
// Roles outside the known set are sent as user turns.
func openAIMessages(turns []schema.ChatTurn) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case schema.RoleSystem:
			out = append(out, openai.SystemMessage(t.Content))
		case schema.RoleDeveloper:
			out = append(out, openai.DeveloperMessage(t.Content))
		case schema.RoleAssistant:
			out = append(out, openai.AssistantMessage(t.Content))
		case schema.RoleTool:
			if t.ToolCallID != "" {
				out = append(out, openai.ToolMessage(t.Content, t.ToolCallID))
			} else {
				out = append(out, openai.AssistantMessage(t.Content))
			}
		default:
			out = append(out, openai.UserMessage(t.Content))
		}
	}
	return out
}
