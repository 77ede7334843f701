package repository

import (
	"context"

	"swipebite/internal/cache"
	"swipebite/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for favorite data operations
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, userID, dishID uint) error
	Exists(ctx context.Context, userID, dishID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Favorite, error)
	CountByDish(ctx context.Context, dishID uint) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	err := r.db.WithContext(ctx).Create(favorite).Error
	if err == nil {
		cache.InvalidateDishStats(ctx, favorite.DishID)
		cache.InvalidateUserStats(ctx, favorite.UserID)
	}
	return err
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, dishID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND dish_id = ?", userID, dishID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateDishStats(ctx, dishID)
	cache.InvalidateUserStats(ctx, userID)
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, dishID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND dish_id = ?", userID, dishID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Favorite, error) {
	var favorites []*models.Favorite
	err := r.db.WithContext(ctx).
		Preload("Dish").
		Preload("Dish.Cuisine").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error
	return favorites, err
}

func (r *favoriteRepository) CountByDish(ctx context.Context, dishID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("dish_id = ?", dishID).
		Count(&count).Error
	return count, err
}

func (r *favoriteRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
