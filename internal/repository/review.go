package repository

import (
	"context"

	"swipebite/internal/cache"
	"swipebite/internal/models"

	"gorm.io/gorm"
)

// ReviewAggregate is the review slice of a dish's stats.
type ReviewAggregate struct {
	Count   int64
	Average float64
}

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	GetByUserAndDish(ctx context.Context, userID, dishID uint) (*models.Review, error)
	ListByDish(ctx context.Context, dishID uint, rating int, limit, offset int) ([]*models.Review, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error)
	AggregateByDish(ctx context.Context, dishID uint) (*ReviewAggregate, error)
	AveragesByDish(ctx context.Context, dishIDs []uint) (map[uint]float64, error)
	Distribution(ctx context.Context, dishID uint) (models.RatingDistribution, error)
	ToggleHelpful(ctx context.Context, userID, reviewID uint) (marked bool, err error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if err == nil {
		cache.InvalidateDishStats(ctx, review.DishID)
		cache.InvalidateUserStats(ctx, review.UserID)
	}
	return err
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Save(review).Error
	if err == nil {
		cache.InvalidateDishStats(ctx, review.DishID)
	}
	return err
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return err
	}
	cache.InvalidateDishStats(ctx, review.DishID)
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByUserAndDish(ctx context.Context, userID, dishID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND dish_id = ?", userID, dishID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByDish(ctx context.Context, dishID uint, rating int, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	q := r.db.WithContext(ctx).
		Preload("User").
		Where("dish_id = ?", dishID)
	if rating > 0 {
		q = q.Where("rating = ?", rating)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("Dish").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

// AggregateByDish returns the review count and mean rating for a dish.
// The average is 0 when the dish has no reviews.
func (r *reviewRepository) AggregateByDish(ctx context.Context, dishID uint) (*ReviewAggregate, error) {
	var agg ReviewAggregate
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("dish_id = ?", dishID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// AveragesByDish returns the mean rating for each of the given dishes.
// Dishes without reviews are absent from the map.
func (r *reviewRepository) AveragesByDish(ctx context.Context, dishIDs []uint) (map[uint]float64, error) {
	if len(dishIDs) == 0 {
		return map[uint]float64{}, nil
	}
	type row struct {
		DishID  uint
		Average float64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("dish_id, AVG(rating) AS average").
		Where("dish_id IN ?", dishIDs).
		Group("dish_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	averages := make(map[uint]float64, len(rows))
	for _, rw := range rows {
		averages[rw.DishID] = rw.Average
	}
	return averages, nil
}

func (r *reviewRepository) Distribution(ctx context.Context, dishID uint) (models.RatingDistribution, error) {
	type row struct {
		Rating int
		Cnt    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("rating, COUNT(*) AS cnt").
		Where("dish_id = ?", dishID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := models.RatingDistribution{}
	for star := models.RatingMin; star <= models.RatingMax; star++ {
		dist[star] = 0
	}
	for _, rw := range rows {
		dist[rw.Rating] = rw.Cnt
	}
	return dist, nil
}

// ToggleHelpful marks a review helpful for the user, or removes the mark
// if it already exists, keeping the denormalized count in sync. Runs in a
// transaction so the vote row and the counter never diverge.
func (r *reviewRepository) ToggleHelpful(ctx context.Context, userID, reviewID uint) (bool, error) {
	var marked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote models.ReviewHelpful
		findErr := tx.Where("user_id = ? AND review_id = ?", userID, reviewID).First(&vote).Error

		switch {
		case findErr == nil:
			if err := tx.Delete(&vote).Error; err != nil {
				return err
			}
			marked = false
			return tx.Model(&models.Review{}).
				Where("id = ? AND helpful_count > 0", reviewID).
				UpdateColumn("helpful_count", gorm.Expr("helpful_count - 1")).Error
		case findErr == gorm.ErrRecordNotFound:
			if err := tx.Create(&models.ReviewHelpful{UserID: userID, ReviewID: reviewID}).Error; err != nil {
				return err
			}
			marked = true
			return tx.Model(&models.Review{}).
				Where("id = ?", reviewID).
				UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error
		default:
			return findErr
		}
	})
	return marked, err
}
