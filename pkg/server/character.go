package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"cameo/pkg/character"
	"cameo/pkg/schema"
	"cameo/pkg/utils"
)

type characterReq struct {
	CharacterName string `json:"character_name"`
	// ForceTool defaults to true when omitted.
	ForceTool *bool `json:"force_tool"`
}

// POST /character
func (s *Server) handlePostCharacter(c echo.Context) error {
	var req characterReq
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /character", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	force := true
	if req.ForceTool != nil {
		force = *req.ForceTool
	}

	profile, err := s.Characters.GetProfile(c.Request().Context(), req.CharacterName, force)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

type chatReq struct {
	CharacterName string            `json:"character_name"`
	Role          string            `json:"role"`
	UserMessage   string            `json:"user_message"`
	History       []schema.ChatTurn `json:"history"`
	// CharacterInformation is a previously fetched profile. Clients may send
	// notable_works as a list or null, so it goes through the normalizer.
	CharacterInformation map[string]any `json:"character_information"`
}

type chatResp struct {
	CharacterInformation schema.Profile `json:"character_information"`
	SystemRoleUsed       character.Mode `json:"system_role_used"`
	AssistantText        string         `json:"assistant_text"`
}

// POST /chat
func (s *Server) handlePostChat(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /chat", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	in := character.ChatInput{
		CharacterName: req.CharacterName,
		Role:          req.Role,
		UserMessage:   req.UserMessage,
		History:       req.History,
	}
	if req.CharacterInformation != nil {
		p := character.NormalizeArguments(req.CharacterInformation)
		in.Profile = &p
	}

	log.Debug("chat turn", "character", req.CharacterName, "role", req.Role,
		"history", len(req.History), "message", utils.LimitStr(req.UserMessage, 80))

	out, err := s.Characters.Chat(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, chatResp{
		CharacterInformation: out.Profile,
		SystemRoleUsed:       out.Mode,
		AssistantText:        out.Text,
	})
}
