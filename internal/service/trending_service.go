package service

import (
	"context"
	"math"
	"sort"
	"time"

	"swipebite/internal/cache"
	"swipebite/internal/models"
	"swipebite/internal/observability"
	"swipebite/internal/repository"
)

// Interaction weights for the trending score. A favorite is the
// strongest signal, a positive review is next, a plain right swipe
// the weakest.
const (
	weightSwipeLike      = 1.0
	weightPositiveReview = 2.0
	weightFavorite       = 3.0
)

type TrendingService struct {
	rankingRepo repository.RankingRepository
	dishRepo    repository.DishRepository

	windowHours   int
	halfLifeHours float64

	// now is swapped out in tests
	now func() time.Time
}

func NewTrendingService(
	rankingRepo repository.RankingRepository,
	dishRepo repository.DishRepository,
	windowHours int,
	halfLifeHours float64,
) *TrendingService {
	return &TrendingService{
		rankingRepo:   rankingRepo,
		dishRepo:      dishRepo,
		windowHours:   windowHours,
		halfLifeHours: halfLifeHours,
		now:           time.Now,
	}
}

func interactionWeight(interactionType string) float64 {
	switch interactionType {
	case models.InteractionFavorite:
		return weightFavorite
	case models.InteractionPositiveReview:
		return weightPositiveReview
	case models.InteractionSwipeLike:
		return weightSwipeLike
	default:
		return 0
	}
}

// ScoreInteractions computes the decayed trending score for each dish
// from a batch of interactions. Each event contributes
// weight * 2^(-age/halfLife); the result is sorted by score descending
// with dish ID ascending as the tiebreak.
func ScoreInteractions(interactions []models.Interaction, now time.Time, halfLifeHours float64) []models.DishScore {
	totals := make(map[uint]float64)
	for _, in := range interactions {
		ageHours := now.Sub(in.CreatedAt).Hours()
		if ageHours < 0 {
			ageHours = 0
		}
		totals[in.DishID] += interactionWeight(in.Type) * math.Exp2(-ageHours/halfLifeHours)
	}

	scores := make([]models.DishScore, 0, len(totals))
	for dishID, score := range totals {
		scores = append(scores, models.DishScore{DishID: dishID, Score: score})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].DishID < scores[j].DishID
	})
	return scores
}

// Compute recalculates trending scores over the configured window and
// replaces the stored snapshot. Dishes with no interactions in the
// window are absent from the result.
func (s *TrendingService) Compute(ctx context.Context) ([]models.DishScore, error) {
	return s.computeWith(ctx, s.windowHours, s.halfLifeHours)
}

// ComputeWith runs a one-off computation with explicit parameters.
func (s *TrendingService) ComputeWith(ctx context.Context, windowHours int, halfLifeHours float64) ([]models.DishScore, error) {
	return s.computeWith(ctx, windowHours, halfLifeHours)
}

func (s *TrendingService) computeWith(ctx context.Context, windowHours int, halfLifeHours float64) ([]models.DishScore, error) {
	if windowHours <= 0 {
		return nil, models.NewValidationError("Trending window must be positive")
	}
	if halfLifeHours <= 0 {
		return nil, models.NewValidationError("Trending half-life must be positive")
	}

	start := s.now()
	defer func() {
		observability.TrendingComputeLatency.Observe(time.Since(start).Seconds())
	}()

	since := start.Add(-time.Duration(windowHours) * time.Hour)
	interactions, err := s.rankingRepo.RecentInteractions(ctx, since)
	if err != nil {
		return nil, err
	}

	scores := ScoreInteractions(interactions, start, halfLifeHours)

	entries := make([]*models.TrendingDish, 0, len(scores))
	for _, sc := range scores {
		entries = append(entries, &models.TrendingDish{
			DishID:     sc.DishID,
			Score:      sc.Score,
			ComputedAt: start,
		})
	}
	if err := s.rankingRepo.ReplaceTrending(ctx, entries); err != nil {
		return nil, err
	}
	// The snapshot table was replaced, so the served key must go even
	// when this run used override knobs.
	keys := []string{cache.TrendingKey(s.windowHours, s.halfLifeHours)}
	if windowHours != s.windowHours || halfLifeHours != s.halfLifeHours {
		keys = append(keys, cache.TrendingKey(windowHours, halfLifeHours))
	}
	cache.Invalidate(ctx, keys...)

	return scores, nil
}

// Trending returns the stored snapshot, limited to the top entries.
func (s *TrendingService) Trending(ctx context.Context, limit int) ([]*models.TrendingDish, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []*models.TrendingDish
	key := cache.TrendingKey(s.windowHours, s.halfLifeHours)
	err := cache.Aside(ctx, key, &entries, cache.TrendingTTL, func() error {
		var loadErr error
		entries, loadErr = s.rankingRepo.ListTrending(ctx, limit)
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
