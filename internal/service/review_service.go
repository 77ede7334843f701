package service

import (
	"context"
	"errors"

	"swipebite/internal/cache"
	"swipebite/internal/models"
	"swipebite/internal/repository"

	"gorm.io/gorm"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	dishRepo   repository.DishRepository
}

type CreateReviewInput struct {
	UserID  uint
	DishID  uint
	Rating  int
	Title   string
	Content string
}

type UpdateReviewInput struct {
	UserID   uint
	ReviewID uint
	Rating   int
	Title    string
	Content  string
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	dishRepo repository.DishRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		dishRepo:   dishRepo,
	}
}

const (
	maxReviewTitleLen   = 200
	maxReviewContentLen = 10000
)

func validateReviewFields(rating int, title, content string) error {
	if !models.ValidRating(rating) {
		return models.NewValidationError("Rating must be between 1 and 5")
	}
	if len(title) > maxReviewTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(content) > maxReviewContentLen {
		return models.NewValidationError("Content too long (max 10000 characters)")
	}
	return nil
}

// CreateReview writes a rated review of a dish. Each user may review a
// dish once; a second attempt is rejected.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if err := validateReviewFields(in.Rating, in.Title, in.Content); err != nil {
		return nil, err
	}

	exists, err := s.dishRepo.Exists(ctx, in.DishID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Dish", in.DishID)
	}

	if _, err := s.reviewRepo.GetByUserAndDish(ctx, in.UserID, in.DishID); err == nil {
		return nil, models.NewAlreadyExistsError("You have already reviewed this dish")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		UserID:  in.UserID,
		DishID:  in.DishID,
		Rating:  in.Rating,
		Title:   in.Title,
		Content: in.Content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	cache.InvalidateDishStats(ctx, in.DishID)
	cache.InvalidateUserStats(ctx, in.UserID)
	return s.reviewRepo.GetByID(ctx, review.ID)
}

// UpdateReview edits the caller's own review.
func (s *ReviewService) UpdateReview(ctx context.Context, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Review", in.ReviewID)
	}
	if err != nil {
		return nil, err
	}
	if review.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own reviews")
	}
	if err := validateReviewFields(in.Rating, in.Title, in.Content); err != nil {
		return nil, err
	}

	review.Rating = in.Rating
	review.Title = in.Title
	review.Content = in.Content
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	cache.InvalidateDishStats(ctx, review.DishID)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Review", reviewID)
	}
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return models.NewForbiddenError("You can only delete your own reviews")
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}
	cache.InvalidateDishStats(ctx, review.DishID)
	cache.InvalidateUserStats(ctx, userID)
	return nil
}

// ListByDish returns a dish's reviews, optionally narrowed to one star
// rating.
func (s *ReviewService) ListByDish(ctx context.Context, dishID uint, rating, limit, offset int) ([]*models.Review, error) {
	if rating != 0 && !models.ValidRating(rating) {
		return nil, models.NewValidationError("Rating filter must be between 1 and 5")
	}
	exists, err := s.dishRepo.Exists(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Dish", dishID)
	}
	return s.reviewRepo.ListByDish(ctx, dishID, rating, limit, offset)
}

func (s *ReviewService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	return s.reviewRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *ReviewService) Distribution(ctx context.Context, dishID uint) (models.RatingDistribution, error) {
	exists, err := s.dishRepo.Exists(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Dish", dishID)
	}
	return s.reviewRepo.Distribution(ctx, dishID)
}

// ToggleHelpful flips the caller's helpful vote on a review. Users
// cannot vote on their own reviews.
func (s *ReviewService) ToggleHelpful(ctx context.Context, userID, reviewID uint) (bool, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, models.NewNotFoundError("Review", reviewID)
	}
	if err != nil {
		return false, err
	}
	if review.UserID == userID {
		return false, models.NewValidationError("You cannot mark your own review as helpful")
	}
	marked, err := s.reviewRepo.ToggleHelpful(ctx, userID, reviewID)
	if err == nil {
		cache.InvalidateUserStats(ctx, review.UserID)
	}
	return marked, err
}
