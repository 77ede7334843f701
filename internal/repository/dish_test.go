package repository

import (
	"context"
	"testing"

	"swipebite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDishRepository_DiscoveryFeed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDishRepository(db)
	ctx := context.Background()

	user := models.User{Username: "feed", Email: "feed@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	seen := models.Dish{Name: "Pad Thai", IsActive: true}
	fresh := models.Dish{Name: "Tacos", IsActive: true}
	inactive := models.Dish{Name: "Old Special", IsActive: false}
	require.NoError(t, db.Create(&seen).Error)
	require.NoError(t, db.Create(&fresh).Error)
	require.NoError(t, db.Create(&inactive).Error)

	require.NoError(t, db.Create(&models.SwipeAction{
		UserID: user.ID, DishID: seen.ID, Direction: models.SwipeLeft,
	}).Error)

	dishes, err := repo.DiscoveryFeed(ctx, user.ID, DishFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, dishes, 1, "swiped and inactive dishes are excluded")
	assert.Equal(t, fresh.ID, dishes[0].ID)
}

func TestDishRepository_Filter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDishRepository(db)
	ctx := context.Background()

	thai := models.Cuisine{Name: "Thai"}
	require.NoError(t, db.Create(&thai).Error)

	match := models.Dish{
		Name: "Veg Green Curry", CuisineID: &thai.ID, IsActive: true,
		IsVegetarian: true, Calories: 450, PriceTier: 2,
	}
	tooPricey := models.Dish{
		Name: "Royal Curry", CuisineID: &thai.ID, IsActive: true,
		IsVegetarian: true, Calories: 450, PriceTier: 4,
	}
	notVegetarian := models.Dish{
		Name: "Beef Curry", CuisineID: &thai.ID, IsActive: true,
		Calories: 450, PriceTier: 2,
	}
	for _, d := range []*models.Dish{&match, &tooPricey, &notVegetarian} {
		require.NoError(t, db.Create(d).Error)
	}

	dishes, err := repo.Filter(ctx, DishFilter{
		CuisineName: "thai",
		Diet:        models.DietVegetarian,
		MaxCalories: 500,
		PriceTier:   2,
	})
	require.NoError(t, err)
	require.Len(t, dishes, 1, "all constraints apply together")
	assert.Equal(t, match.ID, dishes[0].ID)
}

func TestDishRepository_Filter_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDishRepository(db)
	ctx := context.Background()

	thai := models.Cuisine{Name: "Thai"}
	require.NoError(t, db.Create(&thai).Error)

	byName := models.Dish{Name: "Spicy Noodles", IsActive: true}
	byDescription := models.Dish{Name: "House Special", Description: "Wok-fried noodles with basil", IsActive: true}
	byCuisine := models.Dish{Name: "Green Curry", CuisineID: &thai.ID, IsActive: true}
	unrelated := models.Dish{Name: "Caesar Salad", IsActive: true}
	hidden := models.Dish{Name: "Retired Noodles", IsActive: false}
	for _, d := range []*models.Dish{&byName, &byDescription, &byCuisine, &unrelated, &hidden} {
		require.NoError(t, db.Create(d).Error)
	}

	dishes, err := repo.Filter(ctx, DishFilter{Query: "NOODLE"})
	require.NoError(t, err)
	require.Len(t, dishes, 2, "matches name and description, case-insensitive, active only")
	assert.Equal(t, byName.ID, dishes[0].ID)
	assert.Equal(t, byDescription.ID, dishes[1].ID)

	dishes, err = repo.Filter(ctx, DishFilter{Query: "thai"})
	require.NoError(t, err)
	require.Len(t, dishes, 1, "cuisine names are searched too")
	assert.Equal(t, byCuisine.ID, dishes[0].ID)

	names, err := repo.CuisineNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Thai"}, names)
}

func TestDishRepository_Similar(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDishRepository(db)
	ctx := context.Background()

	thai := models.Cuisine{Name: "Thai"}
	mexican := models.Cuisine{Name: "Mexican"}
	require.NoError(t, db.Create(&thai).Error)
	require.NoError(t, db.Create(&mexican).Error)

	reference := models.Dish{Name: "Pad Thai", CuisineID: &thai.ID, MealType: models.MealDinner, Calories: 600, IsActive: true}
	nearby := models.Dish{Name: "Drunken Noodles", CuisineID: &thai.ID, MealType: models.MealDinner, Calories: 700, IsActive: true}
	farCalories := models.Dish{Name: "Thai Salad", CuisineID: &thai.ID, MealType: models.MealDinner, Calories: 200, IsActive: true}
	otherCuisine := models.Dish{Name: "Burrito", CuisineID: &mexican.ID, MealType: models.MealDinner, Calories: 650, IsActive: true}
	for _, d := range []*models.Dish{&reference, &nearby, &farCalories, &otherCuisine} {
		require.NoError(t, db.Create(d).Error)
	}

	similar, err := repo.Similar(ctx, &reference, 5)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, nearby.ID, similar[0].ID)
}
