package character

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"cameo/pkg/inference"
	"cameo/pkg/schema"
)

// MaxHistoryTurns bounds how many prior turns reach the model.
const MaxHistoryTurns = 20

type ChatInput struct {
	CharacterName string
	Role          string
	UserMessage   string
	History       []schema.ChatTurn
	// Profile skips the profile lookup when set.
	Profile *schema.Profile
}

type ChatOutput struct {
	Profile schema.Profile
	Mode    Mode
	Text    string
}

// Chat produces one assistant reply. The caller owns the history and is
// expected to append both the user message and the reply for the next turn.
func (s *Service) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	name := strings.TrimSpace(in.CharacterName)
	if name == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_character_name", nil)
	}
	if strings.TrimSpace(in.UserMessage) == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_user_message", nil)
	}

	var profile schema.Profile
	if in.Profile != nil {
		profile = *in.Profile
	} else {
		fetched, err := s.GetProfile(ctx, name, true)
		if err != nil {
			return ChatOutput{}, err
		}
		profile = fetched
	}

	mode := SelectMode(name, in.Role)
	system, err := buildChatSystemPrompt(name, mode, profile)
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "system_prompt_render_failed", err)
	}

	messages := assembleMessages(system, in.History, in.UserMessage)
	s.logPromptSize(name, mode, messages)

	resp, err := s.inf.Complete(ctx, &inference.Request{
		Messages:  messages,
		MaxTokens: MaxGeneratedTokens,
	})
	if err != nil {
		log.Error("chat inference failed", "character", name, "mode", mode, "error", err)
		return ChatOutput{}, newError(ErrorUpstream, "chat_inference_failed", err)
	}

	return ChatOutput{
		Profile: profile,
		Mode:    mode,
		Text:    resp.Text,
	}, nil
}

// RecentHistory returns the last n turns in their original order.
func RecentHistory(history []schema.ChatTurn, n int) []schema.ChatTurn {
	if n <= 0 {
		return nil
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]schema.ChatTurn, len(history))
	copy(out, history)
	return out
}

func assembleMessages(system string, history []schema.ChatTurn, userMessage string) []schema.ChatTurn {
	recent := RecentHistory(history, MaxHistoryTurns)
	messages := make([]schema.ChatTurn, 0, len(recent)+2)
	messages = append(messages, schema.ChatTurn{Role: schema.RoleSystem, Content: system})
	messages = append(messages, recent...)
	messages = append(messages, schema.ChatTurn{Role: schema.RoleUser, Content: userMessage})
	return messages
}

func (s *Service) logPromptSize(name string, mode Mode, messages []schema.ChatTurn) {
	if s.tokens == nil {
		return
	}
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(m.Content)
		sb.WriteByte('\n')
	}
	n, err := s.tokens(sb.String())
	if err != nil {
		log.Debug("prompt token count unavailable", "error", err)
		return
	}
	log.Debug("chat prompt assembled", "character", name, "mode", mode, "turns", len(messages), "tokens", n)
}
