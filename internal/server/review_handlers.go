package server

import (
	"swipebite/internal/models"
	"swipebite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReview handles POST /api/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	var req struct {
		DishID  uint   `json:"dish_id"`
		Rating  int    `json:"rating"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.Context(), service.CreateReviewInput{
		UserID:  currentUserID(c),
		DishID:  req.DishID,
		Rating:  req.Rating,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// UpdateReview handles PUT /api/reviews/:id. Only the author may edit.
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.UpdateReview(c.Context(), service.UpdateReviewInput{
		UserID:   currentUserID(c),
		ReviewID: reviewID,
		Rating:   req.Rating,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.DeleteReview(c.Context(), currentUserID(c), reviewID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetDishReviews handles GET /api/dishes/:id/reviews?rating=N
func (s *Server) GetDishReviews(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	reviews, err := s.reviewService.ListByDish(c.Context(), dishID,
		c.QueryInt("rating", 0), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"reviews": reviews,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// GetReviewDistribution handles GET /api/dishes/:id/reviews/distribution
func (s *Server) GetReviewDistribution(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	dist, err := s.reviewService.Distribution(c.Context(), dishID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"distribution": dist})
}

// GetMyReviews handles GET /api/reviews/me
func (s *Server) GetMyReviews(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	reviews, err := s.reviewService.ListByUser(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"reviews": reviews,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// ToggleReviewHelpful handles POST /api/reviews/:id/helpful
func (s *Server) ToggleReviewHelpful(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	marked, err := s.reviewService.ToggleHelpful(c.Context(), currentUserID(c), reviewID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"marked_helpful": marked})
}
