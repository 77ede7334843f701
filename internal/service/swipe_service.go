package service

import (
	"context"
	"errors"

	"swipebite/internal/cache"
	"swipebite/internal/models"
	"swipebite/internal/observability"
	"swipebite/internal/repository"

	"gorm.io/gorm"
)

type SwipeService struct {
	swipeRepo    repository.SwipeRepository
	dishRepo     repository.DishRepository
	favoriteRepo repository.FavoriteRepository
}

type RecordSwipeInput struct {
	UserID    uint
	DishID    uint
	Direction string
}

func NewSwipeService(
	swipeRepo repository.SwipeRepository,
	dishRepo repository.DishRepository,
	favoriteRepo repository.FavoriteRepository,
) *SwipeService {
	return &SwipeService{
		swipeRepo:    swipeRepo,
		dishRepo:     dishRepo,
		favoriteRepo: favoriteRepo,
	}
}

// RecordSwipe stores a verdict on a dish. Swiping the same dish again
// overwrites the previous direction rather than erroring.
func (s *SwipeService) RecordSwipe(ctx context.Context, in RecordSwipeInput) (*models.SwipeAction, error) {
	if in.Direction != models.SwipeRight && in.Direction != models.SwipeLeft {
		return nil, models.NewValidationError("Direction must be 'right' or 'left'")
	}

	exists, err := s.dishRepo.Exists(ctx, in.DishID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Dish", in.DishID)
	}

	swipe := &models.SwipeAction{
		UserID:    in.UserID,
		DishID:    in.DishID,
		Direction: in.Direction,
	}
	if err := s.swipeRepo.Upsert(ctx, swipe); err != nil {
		return nil, err
	}

	observability.SwipesTotal.WithLabelValues(in.Direction).Inc()
	cache.InvalidateDishStats(ctx, in.DishID)
	cache.InvalidateUserStats(ctx, in.UserID)
	return swipe, nil
}

func (s *SwipeService) History(ctx context.Context, userID uint, direction string, limit, offset int) ([]*models.SwipeAction, error) {
	if direction != "" && direction != models.SwipeRight && direction != models.SwipeLeft {
		return nil, models.NewValidationError("Direction filter must be 'right' or 'left'")
	}
	return s.swipeRepo.History(ctx, userID, direction, limit, offset)
}

// Stats summarizes a user's swipe activity, including their most
// right-swiped cuisines.
func (s *SwipeService) Stats(ctx context.Context, userID uint) (*models.SwipeStats, error) {
	total, rights, lefts, err := s.swipeRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favoriteRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cuisines, err := s.swipeRepo.TopCuisinesByUser(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	stats := &models.SwipeStats{
		TotalSwipes:    total,
		RightSwipes:    rights,
		LeftSwipes:     lefts,
		TotalFavorites: favorites,
		TopCuisines:    cuisines,
	}
	if total > 0 {
		stats.MatchRate = float64(int64(float64(rights)/float64(total)*1000+0.5)) / 10
	}
	return stats, nil
}

// VerdictFor reports the user's swipe on a dish, or nil when they have
// not swiped it.
func (s *SwipeService) VerdictFor(ctx context.Context, userID, dishID uint) (*models.SwipeAction, error) {
	swipe, err := s.swipeRepo.GetByUserAndDish(ctx, userID, dishID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return swipe, err
}
