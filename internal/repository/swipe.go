package repository

import (
	"context"

	"swipebite/internal/cache"
	"swipebite/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SwipeRepository defines the interface for swipe data operations
type SwipeRepository interface {
	Upsert(ctx context.Context, swipe *models.SwipeAction) error
	GetByUserAndDish(ctx context.Context, userID, dishID uint) (*models.SwipeAction, error)
	History(ctx context.Context, userID uint, direction string, limit, offset int) ([]*models.SwipeAction, error)
	CountByDish(ctx context.Context, dishID uint) (likes, dislikes int64, err error)
	CountByUser(ctx context.Context, userID uint) (total, rights, lefts int64, err error)
	TopCuisinesByUser(ctx context.Context, userID uint, limit int) ([]models.CuisineCount, error)
}

type swipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new swipe repository
func NewSwipeRepository(db *gorm.DB) SwipeRepository {
	return &swipeRepository{db: db}
}

// Upsert records a swipe; swiping a dish the user has already swiped
// updates the direction in place on the (user_id, dish_id) unique index.
func (r *swipeRepository) Upsert(ctx context.Context, swipe *models.SwipeAction) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "dish_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"direction", "updated_at"}),
	}).Create(swipe).Error
	if err == nil {
		cache.InvalidateDishStats(ctx, swipe.DishID)
		cache.InvalidateUserStats(ctx, swipe.UserID)
	}
	return err
}

func (r *swipeRepository) GetByUserAndDish(ctx context.Context, userID, dishID uint) (*models.SwipeAction, error) {
	var swipe models.SwipeAction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND dish_id = ?", userID, dishID).
		First(&swipe).Error
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) History(ctx context.Context, userID uint, direction string, limit, offset int) ([]*models.SwipeAction, error) {
	var swipes []*models.SwipeAction
	q := r.db.WithContext(ctx).
		Preload("Dish").
		Preload("Dish.Cuisine").
		Where("user_id = ?", userID)
	if direction != "" {
		q = q.Where("direction = ?", direction)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&swipes).Error
	return swipes, err
}

func (r *swipeRepository) CountByDish(ctx context.Context, dishID uint) (int64, int64, error) {
	var likes, dislikes int64
	db := r.db.WithContext(ctx).Model(&models.SwipeAction{})

	if err := db.Session(&gorm.Session{}).
		Where("dish_id = ? AND direction = ?", dishID, models.SwipeRight).
		Count(&likes).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("dish_id = ? AND direction = ?", dishID, models.SwipeLeft).
		Count(&dislikes).Error; err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

func (r *swipeRepository) CountByUser(ctx context.Context, userID uint) (int64, int64, int64, error) {
	var total, rights, lefts int64
	db := r.db.WithContext(ctx).Model(&models.SwipeAction{})

	if err := db.Session(&gorm.Session{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, 0, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("user_id = ? AND direction = ?", userID, models.SwipeRight).
		Count(&rights).Error; err != nil {
		return 0, 0, 0, err
	}
	lefts = total - rights
	return total, rights, lefts, nil
}

func (r *swipeRepository) TopCuisinesByUser(ctx context.Context, userID uint, limit int) ([]models.CuisineCount, error) {
	var counts []models.CuisineCount
	err := r.db.WithContext(ctx).Model(&models.SwipeAction{}).
		Select("cuisines.name AS name, cuisines.emoji AS emoji, COUNT(*) AS count").
		Joins("JOIN dishes ON dishes.id = swipe_actions.dish_id").
		Joins("JOIN cuisines ON cuisines.id = dishes.cuisine_id").
		Where("swipe_actions.user_id = ? AND swipe_actions.direction = ?", userID, models.SwipeRight).
		Group("cuisines.id, cuisines.name, cuisines.emoji").
		Order("count DESC, name ASC").
		Limit(limit).
		Scan(&counts).Error
	return counts, err
}
