package server

import (
	"errors"

	"swipebite/internal/models"
	"swipebite/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateSwipe handles POST /api/swipes. Re-swiping a dish overwrites the
// earlier verdict.
func (s *Server) CreateSwipe(c *fiber.Ctx) error {
	var req struct {
		DishID    uint   `json:"dish_id"`
		Direction string `json:"direction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	swipe, err := s.swipeService.RecordSwipe(c.Context(), service.RecordSwipeInput{
		UserID:    currentUserID(c),
		DishID:    req.DishID,
		Direction: req.Direction,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(swipe)
}

// GetSwipeHistory handles GET /api/swipes?direction=right|left
func (s *Server) GetSwipeHistory(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	swipes, err := s.swipeService.History(c.Context(), currentUserID(c),
		c.Query("direction"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"swipes": swipes,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetSwipeStats handles GET /api/swipes/stats
func (s *Server) GetSwipeStats(c *fiber.Ctx) error {
	stats, err := s.swipeService.Stats(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// GetSwipeVerdict handles GET /api/swipes/:dishId. An unswiped dish
// yields a null verdict rather than a 404.
func (s *Server) GetSwipeVerdict(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "dishId")
	if err != nil {
		return nil
	}

	swipe, err := s.swipeService.VerdictFor(c.Context(), currentUserID(c), dishID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"swipe": swipe})
}
