package server

import (
	"io"

	"swipebite/internal/models"
	"swipebite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateDish handles POST /api/dishes (staff only)
func (s *Server) CreateDish(c *fiber.Ctx) error {
	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		CuisineID    *uint  `json:"cuisine_id"`
		Calories     int    `json:"calories"`
		Protein      int    `json:"protein"`
		Carbs        int    `json:"carbs"`
		Fat          int    `json:"fat"`
		MealType     string `json:"meal_type"`
		IsVegetarian bool   `json:"is_vegetarian"`
		IsVegan      bool   `json:"is_vegan"`
		IsGlutenFree bool   `json:"is_gluten_free"`
		SpiceLevel   int    `json:"spice_level"`
		PriceTier    int    `json:"price_tier"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	dish, err := s.dishService.CreateDish(c.Context(), service.CreateDishInput{
		Name:         req.Name,
		Description:  req.Description,
		CuisineID:    req.CuisineID,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
		MealType:     req.MealType,
		IsVegetarian: req.IsVegetarian,
		IsVegan:      req.IsVegan,
		IsGlutenFree: req.IsGlutenFree,
		SpiceLevel:   req.SpiceLevel,
		PriceTier:    req.PriceTier,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dish)
}

// GetDish handles GET /api/dishes/:id
func (s *Server) GetDish(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	dish, err := s.dishService.GetDish(c.Context(), dishID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(dish)
}

// GetDishes handles GET /api/dishes
func (s *Server) GetDishes(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	dishes, err := s.dishService.ListDishes(c.Context(), dishFilterFromQuery(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"dishes": dishes,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetDiscoveryFeed handles GET /api/feed: unswiped dishes for the swipe deck.
func (s *Server) GetDiscoveryFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)
	limit := c.QueryInt("limit", 0)

	dishes, err := s.dishService.DiscoveryFeed(c.Context(), userID, dishFilterFromQuery(c), limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"dishes": dishes})
}

// GetSimilarDishes handles GET /api/dishes/:id/similar
func (s *Server) GetSimilarDishes(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	dishes, err := s.dishService.SimilarDishes(c.Context(), dishID, c.QueryInt("limit", 0))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"dishes": dishes})
}

// GetDishStats handles GET /api/dishes/:id/stats
func (s *Server) GetDishStats(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.statsService.DishStats(c.Context(), dishID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// UploadDishPhoto handles POST /api/dishes/:id/photo (staff only).
// Accepts a multipart form with a "photo" field.
func (s *Server) UploadDishPhoto(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A 'photo' file field is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	dish, err := s.dishService.AttachPhoto(c.Context(), dishID, content,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(dish)
}

// DeactivateDish handles DELETE /api/dishes/:id (staff only).
// Dishes are never hard-deleted; interactions must keep resolving.
func (s *Server) DeactivateDish(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.dishService.Deactivate(c.Context(), dishID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ServeDishMedia handles GET /media/dishes/*: photos written by the
// upload pipeline.
func (s *Server) ServeDishMedia(c *fiber.Ctx) error {
	path, err := s.imageStore.ResolvePath(c.Path())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Media", c.Path()))
	}
	return c.SendFile(path)
}
