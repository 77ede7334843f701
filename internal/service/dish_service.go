package service

import (
	"context"
	"errors"

	"swipebite/internal/cache"
	"swipebite/internal/images"
	"swipebite/internal/models"
	"swipebite/internal/repository"

	"gorm.io/gorm"
)

type DishService struct {
	dishRepo repository.DishRepository
	store    *images.Store
}

type CreateDishInput struct {
	Name         string
	Description  string
	CuisineID    *uint
	Calories     int
	Protein      int
	Carbs        int
	Fat          int
	MealType     string
	IsVegetarian bool
	IsVegan      bool
	IsGlutenFree bool
	SpiceLevel   int
	PriceTier    int
}

func NewDishService(dishRepo repository.DishRepository, store *images.Store) *DishService {
	return &DishService{dishRepo: dishRepo, store: store}
}

var validMealTypes = map[string]bool{
	models.MealBreakfast: true,
	models.MealLunch:     true,
	models.MealDinner:    true,
	models.MealSnack:     true,
	models.MealDessert:   true,
}

func (in *CreateDishInput) validate() error {
	if in.Name == "" {
		return models.NewValidationError("Name is required")
	}
	if len(in.Name) > 200 {
		return models.NewValidationError("Name too long (max 200 characters)")
	}
	if in.MealType != "" && !validMealTypes[in.MealType] {
		return models.NewValidationError("Unknown meal type")
	}
	if in.SpiceLevel < 0 || in.SpiceLevel > 5 {
		return models.NewValidationError("Spice level must be between 0 and 5")
	}
	if in.PriceTier < 0 || in.PriceTier > models.PriceTierMax {
		return models.NewValidationError("Price tier must be between 1 and 4")
	}
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fat < 0 {
		return models.NewValidationError("Nutrition values cannot be negative")
	}
	return nil
}

func (s *DishService) CreateDish(ctx context.Context, in CreateDishInput) (*models.Dish, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	priceTier := in.PriceTier
	if priceTier == 0 {
		priceTier = 2
	}
	dish := &models.Dish{
		Name:         in.Name,
		Description:  in.Description,
		CuisineID:    in.CuisineID,
		Calories:     in.Calories,
		Protein:      in.Protein,
		Carbs:        in.Carbs,
		Fat:          in.Fat,
		MealType:     in.MealType,
		IsVegetarian: in.IsVegetarian,
		IsVegan:      in.IsVegan,
		IsGlutenFree: in.IsGlutenFree,
		SpiceLevel:   in.SpiceLevel,
		PriceTier:    priceTier,
		IsActive:     true,
	}
	if err := s.dishRepo.Create(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *DishService) GetDish(ctx context.Context, id uint) (*models.Dish, error) {
	dish, err := s.dishRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Dish", id)
	}
	return dish, err
}

func (s *DishService) ListDishes(ctx context.Context, filter repository.DishFilter, limit, offset int) ([]*models.Dish, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.dishRepo.List(ctx, filter, limit, offset)
}

// DiscoveryFeed returns the next batch of unswiped dishes for the user.
func (s *DishService) DiscoveryFeed(ctx context.Context, userID uint, filter repository.DishFilter, limit int) ([]*models.Dish, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.dishRepo.DiscoveryFeed(ctx, userID, filter, limit)
}

// SimilarDishes suggests alternatives to a dish the user is looking at.
func (s *DishService) SimilarDishes(ctx context.Context, dishID uint, limit int) ([]*models.Dish, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	dish, err := s.GetDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	return s.dishRepo.Similar(ctx, dish, limit)
}

// AttachPhoto processes an uploaded photo, stores both renditions, and
// points the dish at them.
func (s *DishService) AttachPhoto(ctx context.Context, dishID uint, content []byte, contentType string) (*models.Dish, error) {
	dish, err := s.GetDish(ctx, dishID)
	if err != nil {
		return nil, err
	}

	processed, err := s.store.Process(content, contentType)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	imageURL, thumbURL, err := s.store.Save(processed)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	dish.ImageURL = imageURL
	dish.ThumbnailURL = thumbURL
	if err := s.dishRepo.Update(ctx, dish); err != nil {
		return nil, err
	}
	cache.InvalidateDish(ctx, dishID)
	return dish, nil
}

// Deactivate hides a dish from discovery without deleting its history.
func (s *DishService) Deactivate(ctx context.Context, dishID uint) error {
	dish, err := s.GetDish(ctx, dishID)
	if err != nil {
		return err
	}
	dish.IsActive = false
	if err := s.dishRepo.Update(ctx, dish); err != nil {
		return err
	}
	cache.InvalidateDish(ctx, dishID)
	return nil
}
