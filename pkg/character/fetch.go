package character

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"cameo/pkg/inference"
	"cameo/pkg/schema"
)

const profileSystemPrompt = "You are a narrator who knows a lot about people and provide character information factually."

func profileUserPrompt(name string) string {
	return fmt.Sprintf("Give me factual background information of %s. If you don't know this character, return N/A for each field.", name)
}

// GetProfile asks the model to describe name through the profile tool. When
// the model answers without calling the tool the all-N/A profile is returned.
func (s *Service) GetProfile(ctx context.Context, name string, forceTool bool) (schema.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return schema.Profile{}, newError(ErrorInvalidInput, "empty_character_name", nil)
	}

	choice := inference.ToolChoiceAuto
	if forceTool {
		choice = inference.ToolChoiceRequired
	}

	resp, err := s.inf.Complete(ctx, &inference.Request{
		Messages: []schema.ChatTurn{
			{Role: schema.RoleSystem, Content: profileSystemPrompt},
			{Role: schema.RoleUser, Content: profileUserPrompt(name)},
		},
		Tools:      []schema.Tool{schema.ProfileTool()},
		ToolChoice: choice,
		MaxTokens:  MaxGeneratedTokens,
	})
	if err != nil {
		log.Error("profile inference failed", "character", name, "error", err)
		return schema.Profile{}, newError(ErrorUpstream, "profile_inference_failed", err)
	}

	if len(resp.ToolCalls) == 0 {
		log.Warn("model answered without calling the profile tool", "character", name, "force_tool", forceTool)
		return schema.Unavailable(), nil
	}

	for _, result := range s.normalizer.Normalize(resp.ToolCalls) {
		if result.Profile != nil {
			log.Info("profile fetched", "character", name, "call", result.CallID)
			return *result.Profile, nil
		}
		log.Warn("tool call produced no profile", "character", name, "tool", result.Name, "content", result.Content())
	}

	return schema.Profile{}, newError(ErrorInternal, "tool_returned_no_profile", nil)
}
