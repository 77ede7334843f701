package server

import (
	"swipebite/internal/models"
	"swipebite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddFavorite handles POST /api/favorites
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	var req struct {
		DishID uint   `json:"dish_id"`
		Notes  string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	favorite, err := s.favoriteService.AddFavorite(c.Context(), service.AddFavoriteInput{
		UserID: currentUserID(c),
		DishID: req.DishID,
		Notes:  req.Notes,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(favorite)
}

// GetFavorites handles GET /api/favorites
func (s *Server) GetFavorites(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	favorites, err := s.favoriteService.ListFavorites(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"favorites": favorites,
		"limit":     p.Limit,
		"offset":    p.Offset,
	})
}

// GetFavoriteStatus handles GET /api/favorites/:dishId
func (s *Server) GetFavoriteStatus(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "dishId")
	if err != nil {
		return nil
	}

	isFavorite, err := s.favoriteService.IsFavorite(c.Context(), currentUserID(c), dishID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"is_favorite": isFavorite})
}

// RemoveFavorite handles DELETE /api/favorites/:dishId
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "dishId")
	if err != nil {
		return nil
	}

	if err := s.favoriteService.RemoveFavorite(c.Context(), currentUserID(c), dishID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
