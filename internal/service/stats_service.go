package service

import (
	"context"

	"swipebite/internal/cache"
	"swipebite/internal/models"
	"swipebite/internal/repository"
)

// StatsService assembles the read-side aggregation for dishes. All
// figures are computed on demand from the interaction tables; nothing
// here is a source of truth.
type StatsService struct {
	dishRepo     repository.DishRepository
	swipeRepo    repository.SwipeRepository
	favoriteRepo repository.FavoriteRepository
	reviewRepo   repository.ReviewRepository
}

func NewStatsService(
	dishRepo repository.DishRepository,
	swipeRepo repository.SwipeRepository,
	favoriteRepo repository.FavoriteRepository,
	reviewRepo repository.ReviewRepository,
) *StatsService {
	return &StatsService{
		dishRepo:     dishRepo,
		swipeRepo:    swipeRepo,
		favoriteRepo: favoriteRepo,
		reviewRepo:   reviewRepo,
	}
}

// DishStats returns the aggregated counters for one dish. A dish with no
// interactions yields all-zero stats, not an error; an unknown dish is
// NOT_FOUND.
func (s *StatsService) DishStats(ctx context.Context, dishID uint) (*models.DishStats, error) {
	exists, err := s.dishRepo.Exists(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Dish", dishID)
	}

	var stats models.DishStats
	err = cache.Aside(ctx, cache.DishStatsKey(dishID), &stats, cache.DishStatsTTL, func() error {
		return s.computeDishStats(ctx, dishID, &stats)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *StatsService) computeDishStats(ctx context.Context, dishID uint, stats *models.DishStats) error {
	likes, dislikes, err := s.swipeRepo.CountByDish(ctx, dishID)
	if err != nil {
		return err
	}
	favorites, err := s.favoriteRepo.CountByDish(ctx, dishID)
	if err != nil {
		return err
	}
	agg, err := s.reviewRepo.AggregateByDish(ctx, dishID)
	if err != nil {
		return err
	}

	stats.DishID = dishID
	stats.LikeCount = likes
	stats.DislikeCount = dislikes
	stats.FavoriteCount = favorites
	stats.ReviewCount = agg.Count
	stats.AverageRating = agg.Average
	return nil
}
