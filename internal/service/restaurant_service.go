package service

import (
	"context"
	"errors"

	"swipebite/internal/models"
	"swipebite/internal/repository"

	"gorm.io/gorm"
)

type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
	dishRepo       repository.DishRepository
}

type CreateRestaurantInput struct {
	Name        string
	Description string
	Address     string
	City        string
	State       string
	ZipCode     string
	Latitude    float64
	Longitude   float64
	Phone       string
	Website     string
	PriceRange  string
	CuisineID   *uint
}

func NewRestaurantService(
	restaurantRepo repository.RestaurantRepository,
	dishRepo repository.DishRepository,
) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		dishRepo:       dishRepo,
	}
}

func (s *RestaurantService) CreateRestaurant(ctx context.Context, in CreateRestaurantInput) (*models.Restaurant, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Restaurant name is required")
	}
	if in.PriceRange == "" {
		in.PriceRange = "$$"
	}

	restaurant := &models.Restaurant{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		ZipCode:     in.ZipCode,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Phone:       in.Phone,
		Website:     in.Website,
		PriceRange:  in.PriceRange,
		CuisineID:   in.CuisineID,
		IsActive:    true,
	}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Restaurant", id)
	}
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *RestaurantService) ListRestaurants(ctx context.Context, city string, limit, offset int) ([]*models.Restaurant, error) {
	return s.restaurantRepo.List(ctx, city, limit, offset)
}

// AttachDish puts a dish on a restaurant's menu at the given price.
// Attaching an already-listed dish keeps the existing row.
func (s *RestaurantService) AttachDish(ctx context.Context, restaurantID, dishID uint, price float64) error {
	if price < 0 {
		return models.NewValidationError("Price cannot be negative")
	}

	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return err
	}
	exists, err := s.dishRepo.Exists(ctx, dishID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Dish", dishID)
	}

	return s.restaurantRepo.AttachDish(ctx, restaurantID, dishID, price)
}

// Menu lists the available dishes a restaurant serves, cheapest first.
func (s *RestaurantService) Menu(ctx context.Context, restaurantID uint) ([]*models.RestaurantDish, error) {
	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.restaurantRepo.DishesFor(ctx, restaurantID)
}

// RestaurantsServing lists active restaurants that have the dish on their menu.
func (s *RestaurantService) RestaurantsServing(ctx context.Context, dishID uint) ([]*models.Restaurant, error) {
	exists, err := s.dishRepo.Exists(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Dish", dishID)
	}
	return s.restaurantRepo.RestaurantsServing(ctx, dishID)
}
