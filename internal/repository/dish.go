package repository

import (
	"context"
	"strings"

	"swipebite/internal/cache"
	"swipebite/internal/models"

	"gorm.io/gorm"
)

// DishFilter narrows dish listings. Zero values mean "no constraint";
// all set constraints are conjunctive.
type DishFilter struct {
	Query       string // case-insensitive match on name, description, or cuisine
	CuisineName string
	MealType    string
	Diet        string // vegetarian | vegan | gluten_free
	MaxCalories int
	PriceTier   int
	Spicy       bool // spice level >= 3
}

// DishRepository defines the interface for dish data operations
type DishRepository interface {
	Create(ctx context.Context, dish *models.Dish) error
	GetByID(ctx context.Context, id uint) (*models.Dish, error)
	Update(ctx context.Context, dish *models.Dish) error
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter DishFilter, limit, offset int) ([]*models.Dish, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*models.Dish, error)
	DiscoveryFeed(ctx context.Context, userID uint, filter DishFilter, limit int) ([]*models.Dish, error)
	Similar(ctx context.Context, dish *models.Dish, limit int) ([]*models.Dish, error)
	Filter(ctx context.Context, filter DishFilter) ([]*models.Dish, error)
	CuisineNames(ctx context.Context) ([]string, error)
}

type dishRepository struct {
	db *gorm.DB
}

// NewDishRepository creates a new dish repository
func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

func (r *dishRepository) Create(ctx context.Context, dish *models.Dish) error {
	return r.db.WithContext(ctx).Create(dish).Error
}

func (r *dishRepository) GetByID(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	err := cache.Aside(ctx, cache.DishKey(id), &dish, cache.DishTTL, func() error {
		return r.db.WithContext(ctx).Preload("Cuisine").First(&dish, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *dishRepository) Update(ctx context.Context, dish *models.Dish) error {
	err := r.db.WithContext(ctx).Save(dish).Error
	if err == nil {
		cache.InvalidateDish(ctx, dish.ID)
	}
	return err
}

func (r *dishRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Dish{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *dishRepository) List(ctx context.Context, filter DishFilter, limit, offset int) ([]*models.Dish, error) {
	var dishes []*models.Dish
	err := r.applyFilter(r.activeDishes(ctx), filter).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dishes).Error
	return dishes, err
}

func (r *dishRepository) ListByIDs(ctx context.Context, ids []uint) ([]*models.Dish, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var dishes []*models.Dish
	err := r.db.WithContext(ctx).Preload("Cuisine").
		Where("id IN ?", ids).
		Find(&dishes).Error
	return dishes, err
}

// DiscoveryFeed returns active dishes the user has not swiped on yet,
// narrowed by their preference filter, for the swipe deck.
func (r *dishRepository) DiscoveryFeed(ctx context.Context, userID uint, filter DishFilter, limit int) ([]*models.Dish, error) {
	var dishes []*models.Dish
	swiped := r.db.WithContext(ctx).Model(&models.SwipeAction{}).
		Select("dish_id").
		Where("user_id = ?", userID)

	err := r.applyFilter(r.activeDishes(ctx), filter).
		Where("dishes.id NOT IN (?)", swiped).
		Order("dishes.id ASC").
		Limit(limit).
		Find(&dishes).Error
	return dishes, err
}

// Similar finds dishes sharing cuisine and meal type with calories within
// 200 of the reference dish.
func (r *dishRepository) Similar(ctx context.Context, dish *models.Dish, limit int) ([]*models.Dish, error) {
	var dishes []*models.Dish
	q := r.activeDishes(ctx).
		Where("dishes.id != ?", dish.ID).
		Where("meal_type = ?", dish.MealType)
	if dish.CuisineID != nil {
		q = q.Where("cuisine_id = ?", *dish.CuisineID)
	}
	if dish.Calories > 0 {
		q = q.Where("calories BETWEEN ? AND ?", dish.Calories-200, dish.Calories+200)
	}
	err := q.Order("dishes.id ASC").Limit(limit).Find(&dishes).Error
	return dishes, err
}

func (r *dishRepository) Filter(ctx context.Context, filter DishFilter) ([]*models.Dish, error) {
	var dishes []*models.Dish
	err := r.applyFilter(r.activeDishes(ctx), filter).
		Order("dishes.id ASC").
		Find(&dishes).Error
	return dishes, err
}

// CuisineNames lists every cuisine name; the assistant scans free-text
// queries against it.
func (r *dishRepository) CuisineNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Cuisine{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (r *dishRepository) activeDishes(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Dish{}).
		Preload("Cuisine").
		Where("dishes.is_active = ?", true)
}

func (r *dishRepository) applyFilter(q *gorm.DB, filter DishFilter) *gorm.DB {
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where(
			"(LOWER(dishes.name) LIKE ? OR LOWER(dishes.description) LIKE ? OR dishes.cuisine_id IN (?))",
			pattern, pattern,
			r.db.Model(&models.Cuisine{}).Select("id").Where("LOWER(name) LIKE ?", pattern),
		)
	}
	if filter.CuisineName != "" {
		q = q.Joins("JOIN cuisines ON cuisines.id = dishes.cuisine_id").
			Where("LOWER(cuisines.name) = LOWER(?)", filter.CuisineName)
	}
	if filter.MealType != "" {
		q = q.Where("meal_type = ?", filter.MealType)
	}
	switch filter.Diet {
	case models.DietVegetarian:
		q = q.Where("is_vegetarian = ?", true)
	case models.DietVegan:
		q = q.Where("is_vegan = ?", true)
	case "gluten_free":
		q = q.Where("is_gluten_free = ?", true)
	}
	if filter.MaxCalories > 0 {
		q = q.Where("calories > 0 AND calories <= ?", filter.MaxCalories)
	}
	if filter.PriceTier > 0 {
		q = q.Where("price_tier <= ?", filter.PriceTier)
	}
	if filter.Spicy {
		q = q.Where("spice_level >= ?", 3)
	}
	return q
}
