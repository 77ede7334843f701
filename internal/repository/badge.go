package repository

import (
	"context"

	"swipebite/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BadgeRepository defines the interface for badge data operations
type BadgeRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]*models.UserBadge, error)
	TypesByUser(ctx context.Context, userID uint) (map[string]bool, error)
	Grant(ctx context.Context, badge *models.UserBadge) (granted bool, err error)
	CountByType(ctx context.Context) (map[string]int64, error)
}

type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) ListByUser(ctx context.Context, userID uint) ([]*models.UserBadge, error) {
	var badges []*models.UserBadge
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at ASC").
		Find(&badges).Error
	return badges, err
}

func (r *badgeRepository) TypesByUser(ctx context.Context, userID uint) (map[string]bool, error) {
	var types []string
	err := r.db.WithContext(ctx).Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_type", &types).Error
	if err != nil {
		return nil, err
	}
	held := make(map[string]bool, len(types))
	for _, t := range types {
		held[t] = true
	}
	return held, nil
}

// Grant awards a badge once per (user, type); a concurrent duplicate grant
// is swallowed by DO NOTHING and reported as not granted.
func (r *badgeRepository) Grant(ctx context.Context, badge *models.UserBadge) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_type"}},
		DoNothing: true,
	}).Create(badge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *badgeRepository) CountByType(ctx context.Context) (map[string]int64, error) {
	type row struct {
		BadgeType string
		Cnt       int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.UserBadge{}).
		Select("badge_type, COUNT(*) AS cnt").
		Group("badge_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.BadgeType] = rw.Cnt
	}
	return counts, nil
}
