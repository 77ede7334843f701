package repository

import (
	"context"

	"swipebite/internal/models"

	"gorm.io/gorm"
)

// RestaurantRepository defines the interface for restaurant data operations
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	List(ctx context.Context, city string, limit, offset int) ([]*models.Restaurant, error)
	AttachDish(ctx context.Context, restaurantID, dishID uint, price float64) error
	DishesFor(ctx context.Context, restaurantID uint) ([]*models.RestaurantDish, error)
	RestaurantsServing(ctx context.Context, dishID uint) ([]*models.Restaurant, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).Preload("Cuisine").First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) List(ctx context.Context, city string, limit, offset int) ([]*models.Restaurant, error) {
	var restaurants []*models.Restaurant
	q := r.db.WithContext(ctx).Preload("Cuisine").Where("is_active = ?", true)
	if city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&restaurants).Error
	return restaurants, err
}

func (r *restaurantRepository) AttachDish(ctx context.Context, restaurantID, dishID uint, price float64) error {
	link := models.RestaurantDish{
		RestaurantID: restaurantID,
		DishID:       dishID,
		Price:        price,
		IsAvailable:  true,
	}
	return r.db.WithContext(ctx).
		Where("restaurant_id = ? AND dish_id = ?", restaurantID, dishID).
		FirstOrCreate(&link).Error
}

func (r *restaurantRepository) DishesFor(ctx context.Context, restaurantID uint) ([]*models.RestaurantDish, error) {
	var links []*models.RestaurantDish
	err := r.db.WithContext(ctx).
		Preload("Dish").
		Preload("Dish.Cuisine").
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("price ASC").
		Find(&links).Error
	return links, err
}

func (r *restaurantRepository) RestaurantsServing(ctx context.Context, dishID uint) ([]*models.Restaurant, error) {
	var restaurants []*models.Restaurant
	err := r.db.WithContext(ctx).
		Joins("JOIN restaurant_dishes ON restaurant_dishes.restaurant_id = restaurants.id").
		Where("restaurant_dishes.dish_id = ? AND restaurant_dishes.is_available = ?", dishID, true).
		Where("restaurants.is_active = ?", true).
		Find(&restaurants).Error
	return restaurants, err
}
