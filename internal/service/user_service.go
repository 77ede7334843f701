package service

import (
	"context"
	"errors"
	"strings"

	"swipebite/internal/cache"
	"swipebite/internal/models"
	"swipebite/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID           uint
	City             string
	Bio              string
	DietType         string
	Allergies        string
	FavoriteCuisines string
	DailyCalorieGoal int
	MaxDistanceMiles float64
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, err
}

var validDietTypes = map[string]bool{
	models.DietNone:        true,
	models.DietVegetarian:  true,
	models.DietVegan:       true,
	models.DietPescatarian: true,
	models.DietKeto:        true,
	models.DietHalal:       true,
	models.DietKosher:      true,
}

// UpdateProfile applies the non-zero fields of in to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.City != "" {
		user.City = strings.TrimSpace(in.City)
	}
	if in.DietType != "" {
		if !validDietTypes[in.DietType] {
			return nil, models.NewValidationError("Unknown diet type")
		}
		user.DietType = in.DietType
	}
	if in.Allergies != "" {
		user.Allergies = in.Allergies
	}
	if in.FavoriteCuisines != "" {
		user.FavoriteCuisines = in.FavoriteCuisines
	}
	if in.DailyCalorieGoal > 0 {
		user.DailyCalorieGoal = in.DailyCalorieGoal
	}
	if in.MaxDistanceMiles > 0 {
		user.MaxDistanceMiles = in.MaxDistanceMiles
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, user.ID)
	return user, nil
}

// Stats returns the user's interaction counters, cached briefly since
// badge checks and the profile screen both hit it.
func (s *UserService) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", userID)
	}

	var stats models.UserStats
	err = cache.Aside(ctx, cache.UserStatsKey(userID), &stats, cache.UserStatsTTL, func() error {
		loaded, loadErr := s.userRepo.Stats(ctx, userID)
		if loadErr != nil {
			return loadErr
		}
		stats = *loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// LeaderboardEntry is one row of a community leaderboard.
type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

// Leaderboard categories.
const (
	LeaderboardReviewers = "reviewers"
	LeaderboardSwipers   = "swipers"
	LeaderboardBadges    = "badges"
)

// Leaderboard ranks users by activity in the given category.
func (s *UserService) Leaderboard(ctx context.Context, category string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var (
		users  []models.User
		counts []int64
		err    error
	)
	switch category {
	case LeaderboardReviewers:
		users, counts, err = s.userRepo.TopReviewers(ctx, limit)
	case LeaderboardSwipers:
		users, counts, err = s.userRepo.TopSwipers(ctx, limit)
	case LeaderboardBadges:
		users, counts, err = s.userRepo.TopBadgeEarners(ctx, limit)
	default:
		return nil, models.NewValidationError("Leaderboard category must be one of: reviewers, swipers, badges")
	}
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i := range users {
		entries[i] = LeaderboardEntry{
			UserID:   users[i].ID,
			Username: users[i].Username,
			Count:    counts[i],
		}
	}
	return entries, nil
}
