package repository

import (
	"context"
	"testing"

	"swipebite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantRepository_ListFiltersByCity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRestaurantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Restaurant{Name: "Pok Pok", City: "Portland", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &models.Restaurant{Name: "Nong's", City: "portland", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &models.Restaurant{Name: "Uchi", City: "Austin", IsActive: true}))
	require.NoError(t, db.Create(&models.Restaurant{Name: "Closed Spot", City: "Portland", IsActive: false}).Error)

	// City match is case-insensitive and inactive restaurants are hidden.
	restaurants, err := repo.List(ctx, "PORTLAND", 10, 0)
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Nong's", restaurants[0].Name)
	assert.Equal(t, "Pok Pok", restaurants[1].Name)

	all, err := repo.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRestaurantRepository_MenuAndServing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRestaurantRepository(db)
	ctx := context.Background()

	restaurant := &models.Restaurant{Name: "Noodle House", City: "Portland", IsActive: true}
	require.NoError(t, repo.Create(ctx, restaurant))

	padThai := &models.Dish{Name: "Pad Thai", MealType: models.MealDinner, IsActive: true}
	curry := &models.Dish{Name: "Green Curry", MealType: models.MealDinner, IsActive: true}
	require.NoError(t, db.Create(padThai).Error)
	require.NoError(t, db.Create(curry).Error)

	require.NoError(t, repo.AttachDish(ctx, restaurant.ID, padThai.ID, 14.00))
	require.NoError(t, repo.AttachDish(ctx, restaurant.ID, curry.ID, 12.00))

	// Attaching again keeps the original row and price.
	require.NoError(t, repo.AttachDish(ctx, restaurant.ID, padThai.ID, 99.00))

	menu, err := repo.DishesFor(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, curry.ID, menu[0].DishID)
	assert.Equal(t, 14.00, menu[1].Price)

	serving, err := repo.RestaurantsServing(ctx, padThai.ID)
	require.NoError(t, err)
	require.Len(t, serving, 1)
	assert.Equal(t, restaurant.ID, serving[0].ID)

	// Unavailable menu rows drop out of both directions.
	require.NoError(t, db.Model(&models.RestaurantDish{}).
		Where("restaurant_id = ? AND dish_id = ?", restaurant.ID, padThai.ID).
		Update("is_available", false).Error)

	menu, err = repo.DishesFor(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, menu, 1)

	serving, err = repo.RestaurantsServing(ctx, padThai.ID)
	require.NoError(t, err)
	assert.Empty(t, serving)
}
