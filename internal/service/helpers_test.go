package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"swipebite/internal/models"
	"swipebite/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}

// assertAlreadyExistsError asserts that err is an AppError with code ALREADY_EXISTS.
func assertAlreadyExistsError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "ALREADY_EXISTS")
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}

// dishRepoStub is a stub for repository.DishRepository.
type dishRepoStub struct {
	createFn        func(context.Context, *models.Dish) error
	getByIDFn       func(context.Context, uint) (*models.Dish, error)
	updateFn        func(context.Context, *models.Dish) error
	existsFn        func(context.Context, uint) (bool, error)
	listFn          func(context.Context, repository.DishFilter, int, int) ([]*models.Dish, error)
	listByIDsFn     func(context.Context, []uint) ([]*models.Dish, error)
	discoveryFeedFn func(context.Context, uint, repository.DishFilter, int) ([]*models.Dish, error)
	similarFn       func(context.Context, *models.Dish, int) ([]*models.Dish, error)
	filterFn        func(context.Context, repository.DishFilter) ([]*models.Dish, error)
	cuisineNamesFn  func(context.Context) ([]string, error)
}

func (s *dishRepoStub) Create(ctx context.Context, dish *models.Dish) error {
	return s.createFn(ctx, dish)
}
func (s *dishRepoStub) GetByID(ctx context.Context, id uint) (*models.Dish, error) {
	return s.getByIDFn(ctx, id)
}
func (s *dishRepoStub) Update(ctx context.Context, dish *models.Dish) error {
	return s.updateFn(ctx, dish)
}
func (s *dishRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *dishRepoStub) List(ctx context.Context, f repository.DishFilter, limit, offset int) ([]*models.Dish, error) {
	return s.listFn(ctx, f, limit, offset)
}
func (s *dishRepoStub) ListByIDs(ctx context.Context, ids []uint) ([]*models.Dish, error) {
	return s.listByIDsFn(ctx, ids)
}
func (s *dishRepoStub) DiscoveryFeed(ctx context.Context, userID uint, f repository.DishFilter, limit int) ([]*models.Dish, error) {
	return s.discoveryFeedFn(ctx, userID, f, limit)
}
func (s *dishRepoStub) Similar(ctx context.Context, dish *models.Dish, limit int) ([]*models.Dish, error) {
	return s.similarFn(ctx, dish, limit)
}
func (s *dishRepoStub) Filter(ctx context.Context, f repository.DishFilter) ([]*models.Dish, error) {
	return s.filterFn(ctx, f)
}
func (s *dishRepoStub) CuisineNames(ctx context.Context) ([]string, error) {
	return s.cuisineNamesFn(ctx)
}

func noopDishRepo() *dishRepoStub {
	return &dishRepoStub{
		createFn:  func(_ context.Context, _ *models.Dish) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Dish, error) { return &models.Dish{ID: id}, nil },
		updateFn:  func(_ context.Context, _ *models.Dish) error { return nil },
		existsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		listFn: func(_ context.Context, _ repository.DishFilter, _, _ int) ([]*models.Dish, error) {
			return nil, nil
		},
		listByIDsFn: func(_ context.Context, _ []uint) ([]*models.Dish, error) { return nil, nil },
		discoveryFeedFn: func(_ context.Context, _ uint, _ repository.DishFilter, _ int) ([]*models.Dish, error) {
			return nil, nil
		},
		similarFn:      func(_ context.Context, _ *models.Dish, _ int) ([]*models.Dish, error) { return nil, nil },
		filterFn:       func(_ context.Context, _ repository.DishFilter) ([]*models.Dish, error) { return nil, nil },
		cuisineNamesFn: func(_ context.Context) ([]string, error) { return nil, nil },
	}
}

// swipeRepoStub is a stub for repository.SwipeRepository.
type swipeRepoStub struct {
	upsertFn            func(context.Context, *models.SwipeAction) error
	getByUserAndDishFn  func(context.Context, uint, uint) (*models.SwipeAction, error)
	historyFn           func(context.Context, uint, string, int, int) ([]*models.SwipeAction, error)
	countByDishFn       func(context.Context, uint) (int64, int64, error)
	countByUserFn       func(context.Context, uint) (int64, int64, int64, error)
	topCuisinesByUserFn func(context.Context, uint, int) ([]models.CuisineCount, error)
}

func (s *swipeRepoStub) Upsert(ctx context.Context, swipe *models.SwipeAction) error {
	return s.upsertFn(ctx, swipe)
}
func (s *swipeRepoStub) GetByUserAndDish(ctx context.Context, userID, dishID uint) (*models.SwipeAction, error) {
	return s.getByUserAndDishFn(ctx, userID, dishID)
}
func (s *swipeRepoStub) History(ctx context.Context, userID uint, direction string, limit, offset int) ([]*models.SwipeAction, error) {
	return s.historyFn(ctx, userID, direction, limit, offset)
}
func (s *swipeRepoStub) CountByDish(ctx context.Context, dishID uint) (int64, int64, error) {
	return s.countByDishFn(ctx, dishID)
}
func (s *swipeRepoStub) CountByUser(ctx context.Context, userID uint) (int64, int64, int64, error) {
	return s.countByUserFn(ctx, userID)
}
func (s *swipeRepoStub) TopCuisinesByUser(ctx context.Context, userID uint, limit int) ([]models.CuisineCount, error) {
	return s.topCuisinesByUserFn(ctx, userID, limit)
}

func noopSwipeRepo() *swipeRepoStub {
	return &swipeRepoStub{
		upsertFn: func(_ context.Context, _ *models.SwipeAction) error { return nil },
		getByUserAndDishFn: func(_ context.Context, _, _ uint) (*models.SwipeAction, error) {
			return nil, gorm.ErrRecordNotFound
		},
		historyFn: func(_ context.Context, _ uint, _ string, _, _ int) ([]*models.SwipeAction, error) {
			return nil, nil
		},
		countByDishFn: func(_ context.Context, _ uint) (int64, int64, error) { return 0, 0, nil },
		countByUserFn: func(_ context.Context, _ uint) (int64, int64, int64, error) { return 0, 0, 0, nil },
		topCuisinesByUserFn: func(_ context.Context, _ uint, _ int) ([]models.CuisineCount, error) {
			return nil, nil
		},
	}
}

// favoriteRepoStub is a stub for repository.FavoriteRepository.
type favoriteRepoStub struct {
	createFn      func(context.Context, *models.Favorite) error
	deleteFn      func(context.Context, uint, uint) error
	existsFn      func(context.Context, uint, uint) (bool, error)
	listByUserFn  func(context.Context, uint, int, int) ([]*models.Favorite, error)
	countByDishFn func(context.Context, uint) (int64, error)
	countByUserFn func(context.Context, uint) (int64, error)
}

func (s *favoriteRepoStub) Create(ctx context.Context, favorite *models.Favorite) error {
	return s.createFn(ctx, favorite)
}
func (s *favoriteRepoStub) Delete(ctx context.Context, userID, dishID uint) error {
	return s.deleteFn(ctx, userID, dishID)
}
func (s *favoriteRepoStub) Exists(ctx context.Context, userID, dishID uint) (bool, error) {
	return s.existsFn(ctx, userID, dishID)
}
func (s *favoriteRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Favorite, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *favoriteRepoStub) CountByDish(ctx context.Context, dishID uint) (int64, error) {
	return s.countByDishFn(ctx, dishID)
}
func (s *favoriteRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserFn(ctx, userID)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		createFn:      func(_ context.Context, _ *models.Favorite) error { return nil },
		deleteFn:      func(_ context.Context, _, _ uint) error { return nil },
		existsFn:      func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listByUserFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.Favorite, error) { return nil, nil },
		countByDishFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countByUserFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// reviewRepoStub is a stub for repository.ReviewRepository.
type reviewRepoStub struct {
	createFn           func(context.Context, *models.Review) error
	updateFn           func(context.Context, *models.Review) error
	deleteFn           func(context.Context, uint) error
	getByIDFn          func(context.Context, uint) (*models.Review, error)
	getByUserAndDishFn func(context.Context, uint, uint) (*models.Review, error)
	listByDishFn       func(context.Context, uint, int, int, int) ([]*models.Review, error)
	listByUserFn       func(context.Context, uint, int, int) ([]*models.Review, error)
	aggregateByDishFn  func(context.Context, uint) (*repository.ReviewAggregate, error)
	averagesByDishFn   func(context.Context, []uint) (map[uint]float64, error)
	distributionFn     func(context.Context, uint) (models.RatingDistribution, error)
	toggleHelpfulFn    func(context.Context, uint, uint) (bool, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) GetByUserAndDish(ctx context.Context, userID, dishID uint) (*models.Review, error) {
	return s.getByUserAndDishFn(ctx, userID, dishID)
}
func (s *reviewRepoStub) ListByDish(ctx context.Context, dishID uint, rating, limit, offset int) ([]*models.Review, error) {
	return s.listByDishFn(ctx, dishID, rating, limit, offset)
}
func (s *reviewRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *reviewRepoStub) AggregateByDish(ctx context.Context, dishID uint) (*repository.ReviewAggregate, error) {
	return s.aggregateByDishFn(ctx, dishID)
}
func (s *reviewRepoStub) AveragesByDish(ctx context.Context, dishIDs []uint) (map[uint]float64, error) {
	return s.averagesByDishFn(ctx, dishIDs)
}
func (s *reviewRepoStub) Distribution(ctx context.Context, dishID uint) (models.RatingDistribution, error) {
	return s.distributionFn(ctx, dishID)
}
func (s *reviewRepoStub) ToggleHelpful(ctx context.Context, userID, reviewID uint) (bool, error) {
	return s.toggleHelpfulFn(ctx, userID, reviewID)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn:  func(_ context.Context, _ *models.Review) error { return nil },
		updateFn:  func(_ context.Context, _ *models.Review) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Review, error) { return &models.Review{ID: id}, nil },
		getByUserAndDishFn: func(_ context.Context, _, _ uint) (*models.Review, error) {
			return nil, gorm.ErrRecordNotFound
		},
		listByDishFn: func(_ context.Context, _ uint, _, _, _ int) ([]*models.Review, error) { return nil, nil },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Review, error) { return nil, nil },
		aggregateByDishFn: func(_ context.Context, _ uint) (*repository.ReviewAggregate, error) {
			return &repository.ReviewAggregate{}, nil
		},
		averagesByDishFn: func(_ context.Context, _ []uint) (map[uint]float64, error) {
			return map[uint]float64{}, nil
		},
		distributionFn: func(_ context.Context, _ uint) (models.RatingDistribution, error) {
			return models.RatingDistribution{}, nil
		},
		toggleHelpfulFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// rankingRepoStub is a stub for repository.RankingRepository.
type rankingRepoStub struct {
	recentInteractionsFn func(context.Context, time.Time) ([]models.Interaction, error)
	replaceTrendingFn    func(context.Context, []*models.TrendingDish) error
	listTrendingFn       func(context.Context, int) ([]*models.TrendingDish, error)
	weekExistsFn         func(context.Context, time.Time) (bool, error)
	weekStatsFn          func(context.Context, time.Time, time.Time) (map[uint]repository.WeekDishStats, error)
	createWeekFn         func(context.Context, []*models.WeeklyRanking) error
	replaceWeekFn        func(context.Context, time.Time, []*models.WeeklyRanking) error
	getWeekFn            func(context.Context, time.Time) ([]*models.WeeklyRanking, error)
	listWeeksFn          func(context.Context, int) ([]time.Time, error)
}

func (s *rankingRepoStub) RecentInteractions(ctx context.Context, since time.Time) ([]models.Interaction, error) {
	return s.recentInteractionsFn(ctx, since)
}
func (s *rankingRepoStub) ReplaceTrending(ctx context.Context, entries []*models.TrendingDish) error {
	return s.replaceTrendingFn(ctx, entries)
}
func (s *rankingRepoStub) ListTrending(ctx context.Context, limit int) ([]*models.TrendingDish, error) {
	return s.listTrendingFn(ctx, limit)
}
func (s *rankingRepoStub) WeekExists(ctx context.Context, weekStart time.Time) (bool, error) {
	return s.weekExistsFn(ctx, weekStart)
}
func (s *rankingRepoStub) WeekStats(ctx context.Context, start, end time.Time) (map[uint]repository.WeekDishStats, error) {
	return s.weekStatsFn(ctx, start, end)
}
func (s *rankingRepoStub) CreateWeek(ctx context.Context, entries []*models.WeeklyRanking) error {
	return s.createWeekFn(ctx, entries)
}
func (s *rankingRepoStub) ReplaceWeek(ctx context.Context, weekStart time.Time, entries []*models.WeeklyRanking) error {
	return s.replaceWeekFn(ctx, weekStart, entries)
}
func (s *rankingRepoStub) GetWeek(ctx context.Context, weekStart time.Time) ([]*models.WeeklyRanking, error) {
	return s.getWeekFn(ctx, weekStart)
}
func (s *rankingRepoStub) ListWeeks(ctx context.Context, limit int) ([]time.Time, error) {
	return s.listWeeksFn(ctx, limit)
}

func noopRankingRepo() *rankingRepoStub {
	return &rankingRepoStub{
		recentInteractionsFn: func(_ context.Context, _ time.Time) ([]models.Interaction, error) { return nil, nil },
		replaceTrendingFn:    func(_ context.Context, _ []*models.TrendingDish) error { return nil },
		listTrendingFn:       func(_ context.Context, _ int) ([]*models.TrendingDish, error) { return nil, nil },
		weekExistsFn:         func(_ context.Context, _ time.Time) (bool, error) { return false, nil },
		weekStatsFn: func(_ context.Context, _, _ time.Time) (map[uint]repository.WeekDishStats, error) {
			return map[uint]repository.WeekDishStats{}, nil
		},
		createWeekFn: func(_ context.Context, _ []*models.WeeklyRanking) error { return nil },
		replaceWeekFn: func(_ context.Context, _ time.Time, _ []*models.WeeklyRanking) error {
			return nil
		},
		getWeekFn:   func(_ context.Context, _ time.Time) ([]*models.WeeklyRanking, error) { return nil, nil },
		listWeeksFn: func(_ context.Context, _ int) ([]time.Time, error) { return nil, nil },
	}
}

// badgeRepoStub is a stub for repository.BadgeRepository.
type badgeRepoStub struct {
	listByUserFn  func(context.Context, uint) ([]*models.UserBadge, error)
	typesByUserFn func(context.Context, uint) (map[string]bool, error)
	grantFn       func(context.Context, *models.UserBadge) (bool, error)
	countByTypeFn func(context.Context) (map[string]int64, error)
}

func (s *badgeRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.UserBadge, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *badgeRepoStub) TypesByUser(ctx context.Context, userID uint) (map[string]bool, error) {
	return s.typesByUserFn(ctx, userID)
}
func (s *badgeRepoStub) Grant(ctx context.Context, badge *models.UserBadge) (bool, error) {
	return s.grantFn(ctx, badge)
}
func (s *badgeRepoStub) CountByType(ctx context.Context) (map[string]int64, error) {
	return s.countByTypeFn(ctx)
}

func noopBadgeRepo() *badgeRepoStub {
	return &badgeRepoStub{
		listByUserFn:  func(_ context.Context, _ uint) ([]*models.UserBadge, error) { return nil, nil },
		typesByUserFn: func(_ context.Context, _ uint) (map[string]bool, error) { return map[string]bool{}, nil },
		grantFn:       func(_ context.Context, _ *models.UserBadge) (bool, error) { return true, nil },
		countByTypeFn: func(_ context.Context) (map[string]int64, error) { return map[string]int64{}, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn          func(context.Context, *models.User) error
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	updateFn          func(context.Context, *models.User) error
	existsFn          func(context.Context, uint) (bool, error)
	statsFn           func(context.Context, uint) (*models.UserStats, error)
	topReviewersFn    func(context.Context, int) ([]models.User, []int64, error)
	topSwipersFn      func(context.Context, int) ([]models.User, []int64, error)
	topBadgeEarnersFn func(context.Context, int) ([]models.User, []int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *userRepoStub) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	return s.statsFn(ctx, userID)
}
func (s *userRepoStub) TopReviewers(ctx context.Context, limit int) ([]models.User, []int64, error) {
	return s.topReviewersFn(ctx, limit)
}
func (s *userRepoStub) TopSwipers(ctx context.Context, limit int) ([]models.User, []int64, error) {
	return s.topSwipersFn(ctx, limit)
}
func (s *userRepoStub) TopBadgeEarners(ctx context.Context, limit int) ([]models.User, []int64, error) {
	return s.topBadgeEarnersFn(ctx, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		existsFn:        func(_ context.Context, _ uint) (bool, error) { return true, nil },
		statsFn: func(_ context.Context, userID uint) (*models.UserStats, error) {
			return &models.UserStats{UserID: userID}, nil
		},
		topReviewersFn:    func(_ context.Context, _ int) ([]models.User, []int64, error) { return nil, nil, nil },
		topSwipersFn:      func(_ context.Context, _ int) ([]models.User, []int64, error) { return nil, nil, nil },
		topBadgeEarnersFn: func(_ context.Context, _ int) ([]models.User, []int64, error) { return nil, nil, nil },
	}
}

// restaurantRepoStub is a stub for repository.RestaurantRepository.
type restaurantRepoStub struct {
	createFn             func(context.Context, *models.Restaurant) error
	getByIDFn            func(context.Context, uint) (*models.Restaurant, error)
	listFn               func(context.Context, string, int, int) ([]*models.Restaurant, error)
	attachDishFn         func(context.Context, uint, uint, float64) error
	dishesForFn          func(context.Context, uint) ([]*models.RestaurantDish, error)
	restaurantsServingFn func(context.Context, uint) ([]*models.Restaurant, error)
}

func (s *restaurantRepoStub) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return s.createFn(ctx, restaurant)
}
func (s *restaurantRepoStub) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	return s.getByIDFn(ctx, id)
}
func (s *restaurantRepoStub) List(ctx context.Context, city string, limit, offset int) ([]*models.Restaurant, error) {
	return s.listFn(ctx, city, limit, offset)
}
func (s *restaurantRepoStub) AttachDish(ctx context.Context, restaurantID, dishID uint, price float64) error {
	return s.attachDishFn(ctx, restaurantID, dishID, price)
}
func (s *restaurantRepoStub) DishesFor(ctx context.Context, restaurantID uint) ([]*models.RestaurantDish, error) {
	return s.dishesForFn(ctx, restaurantID)
}
func (s *restaurantRepoStub) RestaurantsServing(ctx context.Context, dishID uint) ([]*models.Restaurant, error) {
	return s.restaurantsServingFn(ctx, dishID)
}

func noopRestaurantRepo() *restaurantRepoStub {
	return &restaurantRepoStub{
		createFn: func(_ context.Context, _ *models.Restaurant) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Restaurant, error) {
			return &models.Restaurant{ID: id}, nil
		},
		listFn:       func(_ context.Context, _ string, _, _ int) ([]*models.Restaurant, error) { return nil, nil },
		attachDishFn: func(_ context.Context, _, _ uint, _ float64) error { return nil },
		dishesForFn:  func(_ context.Context, _ uint) ([]*models.RestaurantDish, error) { return nil, nil },
		restaurantsServingFn: func(_ context.Context, _ uint) ([]*models.Restaurant, error) {
			return nil, nil
		},
	}
}

// assistantRepoStub is a stub for repository.AssistantRepository.
type assistantRepoStub struct {
	logQueryFn func(context.Context, *models.AssistantQueryLog) error
	historyFn  func(context.Context, uint, string, int) ([]*models.AssistantQueryLog, error)
}

func (s *assistantRepoStub) LogQuery(ctx context.Context, entry *models.AssistantQueryLog) error {
	return s.logQueryFn(ctx, entry)
}
func (s *assistantRepoStub) History(ctx context.Context, userID uint, conversationID string, limit int) ([]*models.AssistantQueryLog, error) {
	return s.historyFn(ctx, userID, conversationID, limit)
}

func noopAssistantRepo() *assistantRepoStub {
	return &assistantRepoStub{
		logQueryFn: func(_ context.Context, _ *models.AssistantQueryLog) error { return nil },
		historyFn: func(_ context.Context, _ uint, _ string, _ int) ([]*models.AssistantQueryLog, error) {
			return nil, nil
		},
	}
}
