package character

import (
	"context"
	"errors"

	"cameo/pkg/inference"
)

type fakeResponse struct {
	resp *inference.Response
	err  error
}

// fakeInferencer replays responses in order and records every request.
type fakeInferencer struct {
	responses []fakeResponse
	requests  []*inference.Request
}

func (f *fakeInferencer) Complete(_ context.Context, req *inference.Request) (*inference.Response, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return nil, errors.New("no fake response configured")
	}
	idx := len(f.requests) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	r := f.responses[idx]
	return r.resp, r.err
}

func toolResponse(args any) fakeResponse {
	return fakeResponse{resp: &inference.Response{
		ToolCalls: []inference.ToolCall{{ID: "call_1", Name: "get_character_profile_information", Arguments: args}},
	}}
}

func textResponse(text string) fakeResponse {
	return fakeResponse{resp: &inference.Response{Text: text}}
}
