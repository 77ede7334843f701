// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"swipebite/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Exists(ctx context.Context, id uint) (bool, error)
	Stats(ctx context.Context, userID uint) (*models.UserStats, error)
	TopReviewers(ctx context.Context, limit int) ([]models.User, []int64, error)
	TopSwipers(ctx context.Context, limit int) ([]models.User, []int64, error)
	TopBadgeEarners(ctx context.Context, limit int) ([]models.User, []int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Stats folds the interaction tables into the counters badge predicates
// evaluate against.
func (r *userRepository) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	stats := &models.UserStats{UserID: userID}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.SwipeAction{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalSwipes).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Review{}).
		Where("user_id = ?", userID).
		Count(&stats.ReviewsWritten).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.SwipeAction{}).
		Joins("JOIN dishes ON dishes.id = swipe_actions.dish_id").
		Where("swipe_actions.user_id = ? AND swipe_actions.direction = ? AND dishes.cuisine_id IS NOT NULL",
			userID, models.SwipeRight).
		Distinct("dishes.cuisine_id").
		Count(&stats.DistinctCuisinesLiked).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&stats.Favorites).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.ReviewHelpful{}).
		Joins("JOIN reviews ON reviews.id = review_helpfuls.review_id").
		Where("reviews.user_id = ?", userID).
		Count(&stats.HelpfulVotesReceived).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *userRepository) TopReviewers(ctx context.Context, limit int) ([]models.User, []int64, error) {
	return r.topByCount(ctx, limit,
		"JOIN reviews ON reviews.user_id = users.id AND reviews.deleted_at IS NULL")
}

func (r *userRepository) TopSwipers(ctx context.Context, limit int) ([]models.User, []int64, error) {
	return r.topByCount(ctx, limit,
		"JOIN swipe_actions ON swipe_actions.user_id = users.id")
}

func (r *userRepository) TopBadgeEarners(ctx context.Context, limit int) ([]models.User, []int64, error) {
	return r.topByCount(ctx, limit,
		"JOIN user_badges ON user_badges.user_id = users.id")
}

func (r *userRepository) topByCount(ctx context.Context, limit int, join string) ([]models.User, []int64, error) {
	type row struct {
		models.User
		Cnt int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("users.*, COUNT(*) AS cnt").
		Joins(join).
		Group("users.id").
		Order("cnt DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	users := make([]models.User, len(rows))
	counts := make([]int64, len(rows))
	for i, rw := range rows {
		users[i] = rw.User
		counts[i] = rw.Cnt
	}
	return users, counts, nil
}
