package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal types a dish can belong to.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
	MealDessert   = "dessert"
)

// Price tiers, 1 (budget) through 4 (luxury).
const (
	PriceTierMin = 1
	PriceTierMax = 4
)

// Cuisine categorizes dishes.
type Cuisine struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Emoji       string `gorm:"size:10" json:"emoji"`

	CreatedAt time.Time `json:"created_at"`
}

// Dish is the central discovery entity users swipe on, favorite, and review.
type Dish struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null;index" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	CuisineID   *uint    `gorm:"index" json:"cuisine_id,omitempty"`
	Cuisine     *Cuisine `gorm:"foreignKey:CuisineID" json:"cuisine,omitempty"`

	// Nutrition (grams for macros)
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`

	MealType     string `gorm:"size:20;index" json:"meal_type"`
	IsVegetarian bool   `gorm:"default:false" json:"is_vegetarian"`
	IsVegan      bool   `gorm:"default:false" json:"is_vegan"`
	IsGlutenFree bool   `gorm:"default:false" json:"is_gluten_free"`
	SpiceLevel   int    `gorm:"default:0" json:"spice_level"` // 0 (mild) to 5 (very spicy)
	PriceTier    int    `gorm:"default:2;index" json:"price_tier"`

	ImageURL     string `gorm:"size:500" json:"image_url"`
	ThumbnailURL string `gorm:"size:500" json:"thumbnail_url"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DishStats holds the read-side aggregation for a single dish.
// AverageRating is 0 when the dish has no reviews.
type DishStats struct {
	DishID        uint    `json:"dish_id"`
	LikeCount     int64   `json:"like_count"`
	DislikeCount  int64   `json:"dislike_count"`
	FavoriteCount int64   `json:"favorite_count"`
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// MatchRate returns the percentage of right swipes, rounded to one decimal.
func (s *DishStats) MatchRate() float64 {
	total := s.LikeCount + s.DislikeCount
	if total == 0 {
		return 0
	}
	return float64(int64(float64(s.LikeCount)/float64(total)*1000+0.5)) / 10
}
