package inference

import (
	"cmp"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"cameo/pkg/schema"
)

type GeminiInferencer struct {
	client *genai.Client
	model  string
}

// NewGeminiInferencer creates a new inferencer instance using the genai client.
// A non-empty baseURL points the client at a different endpoint; a positive
// timeout bounds each request.
func NewGeminiInferencer(ctx context.Context, apiKey, model, baseURL string, timeout time.Duration) (*GeminiInferencer, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	if timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: timeout}
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, err
	}
	return &GeminiInferencer{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiInferencer) SetModel(model string) {
	g.model = model
}

func (g *GeminiInferencer) Provider() string {
	return "gemini"
}

// Complete maps the conversation onto GenerateContent. System and developer
// turns are folded into the system instruction; assistant and tool turns are
// sent with the model role.
func (g *GeminiInferencer) Complete(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("nil inference request")
	}

	config := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, t := range req.Messages {
		switch t.Role {
		case schema.RoleSystem, schema.RoleDeveloper:
			system = append(system, t.Content)
		case schema.RoleAssistant, schema.RoleTool:
			contents = append(contents, genai.NewContentFromText(t.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(t.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleModel)
	}

	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, tool := range req.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:                 tool.Name,
				Description:          tool.Description,
				ParametersJsonSchema: tool.Parameters,
			})
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}

		mode := genai.FunctionCallingConfigModeAuto
		if req.ToolChoice == ToolChoiceRequired {
			mode = genai.FunctionCallingConfigModeAny
		}
		config.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: mode},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, cmp.Or(req.Model, g.model), contents, config)
	if err != nil {
		return nil, g.upstream(err)
	}

	out := &Response{Text: result.Text()}
	for _, fc := range result.FunctionCalls() {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        fc.ID,
			Name:      fc.Name,
			Arguments: fc.Args,
		})
	}
	return out, nil
}

func (g *GeminiInferencer) upstream(err error) error {
	ue := &UpstreamError{Provider: "gemini", Err: err}
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		ue.StatusCode = apiErr.Code
	case errors.As(err, &apiErrPtr):
		ue.StatusCode = apiErrPtr.Code
	}
	return ue
}
