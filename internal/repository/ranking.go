package repository

import (
	"context"
	"time"

	"swipebite/internal/models"
	"swipebite/internal/observability"

	"gorm.io/gorm"
)

// RankingRepository covers the interaction feed that trending scores are
// computed from, the trending snapshot table, and weekly ranking rows.
type RankingRepository interface {
	RecentInteractions(ctx context.Context, since time.Time) ([]models.Interaction, error)
	ReplaceTrending(ctx context.Context, entries []*models.TrendingDish) error
	ListTrending(ctx context.Context, limit int) ([]*models.TrendingDish, error)

	WeekExists(ctx context.Context, weekStart time.Time) (bool, error)
	WeekStats(ctx context.Context, start, end time.Time) (map[uint]WeekDishStats, error)
	CreateWeek(ctx context.Context, entries []*models.WeeklyRanking) error
	ReplaceWeek(ctx context.Context, weekStart time.Time, entries []*models.WeeklyRanking) error
	GetWeek(ctx context.Context, weekStart time.Time) ([]*models.WeeklyRanking, error)
	ListWeeks(ctx context.Context, limit int) ([]time.Time, error)
}

type rankingRepository struct {
	db *gorm.DB
}

// NewRankingRepository creates a new ranking repository
func NewRankingRepository(db *gorm.DB) RankingRepository {
	return &rankingRepository{db: db}
}

// RecentInteractions gathers every scorable event since the cutoff:
// right swipes, favorites, and reviews rated 4 or higher. Each row carries
// the dish and the moment it happened so the scorer can weigh and decay it.
func (r *rankingRepository) RecentInteractions(ctx context.Context, since time.Time) ([]models.Interaction, error) {
	defer observability.TrackQuery("recent_interactions", "swipe_actions")()
	var out []models.Interaction

	var swipes []models.SwipeAction
	if err := r.db.WithContext(ctx).
		Select("dish_id, created_at").
		Where("direction = ? AND created_at >= ?", models.SwipeRight, since).
		Find(&swipes).Error; err != nil {
		return nil, err
	}
	for _, s := range swipes {
		out = append(out, models.Interaction{
			DishID:    s.DishID,
			Type:      models.InteractionSwipeLike,
			CreatedAt: s.CreatedAt,
		})
	}

	var favorites []models.Favorite
	if err := r.db.WithContext(ctx).
		Select("dish_id, created_at").
		Where("created_at >= ?", since).
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	for _, f := range favorites {
		out = append(out, models.Interaction{
			DishID:    f.DishID,
			Type:      models.InteractionFavorite,
			CreatedAt: f.CreatedAt,
		})
	}

	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Select("dish_id, created_at").
		Where("rating >= ? AND created_at >= ?", 4, since).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	for _, rv := range reviews {
		out = append(out, models.Interaction{
			DishID:    rv.DishID,
			Type:      models.InteractionPositiveReview,
			CreatedAt: rv.CreatedAt,
		})
	}

	return out, nil
}

// ReplaceTrending swaps the whole trending snapshot atomically.
func (r *rankingRepository) ReplaceTrending(ctx context.Context, entries []*models.TrendingDish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.TrendingDish{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *rankingRepository) ListTrending(ctx context.Context, limit int) ([]*models.TrendingDish, error) {
	var entries []*models.TrendingDish
	q := r.db.WithContext(ctx).
		Preload("Dish").
		Preload("Dish.Cuisine").
		Order("score DESC, dish_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}

// WeekDishStats holds the per-dish activity captured into a weekly
// ranking row at build time.
type WeekDishStats struct {
	DishID      uint
	TotalSwipes int64
	RightSwipes int64
	ReviewCount int64
	AvgRating   float64
}

// WeekStats aggregates swipe and review activity per dish inside
// [start, end).
func (r *rankingRepository) WeekStats(ctx context.Context, start, end time.Time) (map[uint]WeekDishStats, error) {
	defer observability.TrackQuery("week_stats", "swipe_actions")()
	stats := make(map[uint]WeekDishStats)

	type swipeRow struct {
		DishID uint
		Total  int64
		Rights int64
	}
	var swipeRows []swipeRow
	err := r.db.WithContext(ctx).Model(&models.SwipeAction{}).
		Select("dish_id, COUNT(*) AS total, SUM(CASE WHEN direction = ? THEN 1 ELSE 0 END) AS rights", models.SwipeRight).
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("dish_id").
		Scan(&swipeRows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range swipeRows {
		stats[rw.DishID] = WeekDishStats{
			DishID:      rw.DishID,
			TotalSwipes: rw.Total,
			RightSwipes: rw.Rights,
		}
	}

	type reviewRow struct {
		DishID  uint
		Cnt     int64
		Average float64
	}
	var reviewRows []reviewRow
	err = r.db.WithContext(ctx).Model(&models.Review{}).
		Select("dish_id, COUNT(*) AS cnt, AVG(rating) AS average").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("dish_id").
		Scan(&reviewRows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range reviewRows {
		s := stats[rw.DishID]
		s.DishID = rw.DishID
		s.ReviewCount = rw.Cnt
		s.AvgRating = rw.Average
		stats[rw.DishID] = s
	}

	return stats, nil
}

func (r *rankingRepository) WeekExists(ctx context.Context, weekStart time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WeeklyRanking{}).
		Where("week_start = ?", weekStart).
		Count(&count).Error
	return count > 0, err
}

// CreateWeek writes all rows for a week in one transaction, re-checking
// inside it that the week is still absent so two concurrent builders
// cannot both land.
func (r *rankingRepository) CreateWeek(ctx context.Context, entries []*models.WeeklyRanking) error {
	if len(entries) == 0 {
		return nil
	}
	weekStart := entries[0].WeekStart
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.WeeklyRanking{}).
			Where("week_start = ?", weekStart).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&entries).Error
	})
}

// ReplaceWeek swaps one week's rows for a new set. Delete and rewrite
// share a transaction so a failed rebuild cannot lose the old snapshot.
func (r *rankingRepository) ReplaceWeek(ctx context.Context, weekStart time.Time, entries []*models.WeeklyRanking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("week_start = ?", weekStart).
			Delete(&models.WeeklyRanking{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *rankingRepository) GetWeek(ctx context.Context, weekStart time.Time) ([]*models.WeeklyRanking, error) {
	var entries []*models.WeeklyRanking
	err := r.db.WithContext(ctx).
		Preload("Dish").
		Preload("Dish.Cuisine").
		Where("week_start = ?", weekStart).
		Order("rank ASC").
		Find(&entries).Error
	return entries, err
}

func (r *rankingRepository) ListWeeks(ctx context.Context, limit int) ([]time.Time, error) {
	var weeks []time.Time
	q := r.db.WithContext(ctx).Model(&models.WeeklyRanking{}).
		Distinct("week_start").
		Order("week_start DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Pluck("week_start", &weeks).Error
	return weeks, err
}
