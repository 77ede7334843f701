package service

import (
	"context"
	"errors"

	"swipebite/internal/cache"
	"swipebite/internal/models"
	"swipebite/internal/repository"

	"gorm.io/gorm"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	dishRepo     repository.DishRepository
}

type AddFavoriteInput struct {
	UserID uint
	DishID uint
	Notes  string
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	dishRepo repository.DishRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		dishRepo:     dishRepo,
	}
}

const maxFavoriteNotesLen = 2000

// AddFavorite bookmarks a dish for the user. Favoriting a dish twice is
// rejected rather than silently ignored.
func (s *FavoriteService) AddFavorite(ctx context.Context, in AddFavoriteInput) (*models.Favorite, error) {
	if len(in.Notes) > maxFavoriteNotesLen {
		return nil, models.NewValidationError("Notes too long (max 2000 characters)")
	}

	exists, err := s.dishRepo.Exists(ctx, in.DishID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Dish", in.DishID)
	}

	already, err := s.favoriteRepo.Exists(ctx, in.UserID, in.DishID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, models.NewAlreadyExistsError("Dish is already in your favorites")
	}

	favorite := &models.Favorite{
		UserID: in.UserID,
		DishID: in.DishID,
		Notes:  in.Notes,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}
	cache.InvalidateDishStats(ctx, in.DishID)
	cache.InvalidateUserStats(ctx, in.UserID)
	return favorite, nil
}

// RemoveFavorite deletes the user's bookmark on a dish.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, dishID uint) error {
	err := s.favoriteRepo.Delete(ctx, userID, dishID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Favorite", dishID)
	}
	if err == nil {
		cache.InvalidateDishStats(ctx, dishID)
		cache.InvalidateUserStats(ctx, userID)
	}
	return err
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID uint, limit, offset int) ([]*models.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, dishID uint) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, dishID)
}
