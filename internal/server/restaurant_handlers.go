package server

import (
	"swipebite/internal/models"
	"swipebite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRestaurant handles POST /api/restaurants (staff only)
func (s *Server) CreateRestaurant(c *fiber.Ctx) error {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Address     string  `json:"address"`
		City        string  `json:"city"`
		State       string  `json:"state"`
		ZipCode     string  `json:"zip_code"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Phone       string  `json:"phone"`
		Website     string  `json:"website"`
		PriceRange  string  `json:"price_range"`
		CuisineID   *uint   `json:"cuisine_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	restaurant, err := s.restaurantService.CreateRestaurant(c.Context(), service.CreateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		Website:     req.Website,
		PriceRange:  req.PriceRange,
		CuisineID:   req.CuisineID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(restaurant)
}

// GetRestaurant handles GET /api/restaurants/:id
func (s *Server) GetRestaurant(c *fiber.Ctx) error {
	restaurantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	restaurant, err := s.restaurantService.GetRestaurant(c.Context(), restaurantID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(restaurant)
}

// GetRestaurants handles GET /api/restaurants with an optional ?city filter.
func (s *Server) GetRestaurants(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	restaurants, err := s.restaurantService.ListRestaurants(c.Context(), c.Query("city"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"restaurants": restaurants,
		"limit":       p.Limit,
		"offset":      p.Offset,
	})
}

// GetRestaurantMenu handles GET /api/restaurants/:id/dishes
func (s *Server) GetRestaurantMenu(c *fiber.Ctx) error {
	restaurantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	menu, err := s.restaurantService.Menu(c.Context(), restaurantID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"menu": menu})
}

// AttachRestaurantDish handles POST /api/restaurants/:id/dishes (staff only)
func (s *Server) AttachRestaurantDish(c *fiber.Ctx) error {
	restaurantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		DishID uint    `json:"dish_id"`
		Price  float64 `json:"price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.DishID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("dish_id is required"))
	}

	if err := s.restaurantService.AttachDish(c.Context(), restaurantID, req.DishID, req.Price); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// GetDishRestaurants handles GET /api/dishes/:id/restaurants
func (s *Server) GetDishRestaurants(c *fiber.Ctx) error {
	dishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	restaurants, err := s.restaurantService.RestaurantsServing(c.Context(), dishID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"restaurants": restaurants})
}
