package server

import (
	"swipebite/internal/models"
	"swipebite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Recommend handles POST /api/assistant/recommend. Keywords in the
// free-text query and every set preference must all match; no matches
// is an empty list.
func (s *Server) Recommend(c *fiber.Ctx) error {
	var req struct {
		Query       string             `json:"query"`
		Preferences models.Preferences `json:"preferences"`
		K           int                `json:"k"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	dishes, err := s.assistantService.Recommend(c.Context(), currentUserID(c), req.Query, req.Preferences, req.K)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"recommendations": dishes})
}

// AssistantChat handles POST /api/assistant/chat
func (s *Server) AssistantChat(c *fiber.Ctx) error {
	var req struct {
		Message        string `json:"message"`
		ConversationID string `json:"conversation_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.assistantService.Chat(c.Context(), service.ChatInput{
		UserID:         currentUserID(c),
		Message:        req.Message,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(reply)
}

// GetAssistantHistory handles GET /api/assistant/history?conversation_id=...
func (s *Server) GetAssistantHistory(c *fiber.Ctx) error {
	logs, err := s.assistantService.History(c.Context(), currentUserID(c),
		c.Query("conversation_id"), c.QueryInt("limit", 0))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"history": logs})
}
