package models

import (
	"time"
)

// Interaction event types feeding the trending score.
const (
	InteractionSwipeLike      = "swipe_like"
	InteractionFavorite       = "favorite"
	InteractionPositiveReview = "positive_review"
)

// Interaction is a read-side projection of a single scoring event. It is
// never persisted as its own table; the ranking repository assembles it
// from swipe_actions, favorites, and reviews.
type Interaction struct {
	DishID    uint
	Type      string
	CreatedAt time.Time
}

// DishScore pairs a dish with its computed trending score.
type DishScore struct {
	DishID uint    `json:"dish_id"`
	Score  float64 `json:"score"`
}

// TrendingDish is the persisted snapshot of the trending computation.
// It is derived data: recomputed on demand and allowed to be stale.
type TrendingDish struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DishID     uint      `gorm:"uniqueIndex;not null" json:"dish_id"`
	Score      float64   `gorm:"index" json:"score"`
	ComputedAt time.Time `json:"computed_at"`

	Dish Dish `gorm:"foreignKey:DishID" json:"dish"`
}

func (TrendingDish) TableName() string {
	return "trending_dishes"
}

// WeeklyRanking is an immutable top-N snapshot for one calendar week.
// Rows for a closed week are never mutated.
type WeeklyRanking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WeekStart time.Time `gorm:"not null;index:idx_week_rank,unique;index:idx_week_dish,unique" json:"week_start"`
	Rank      int       `gorm:"not null;index:idx_week_rank,unique" json:"rank"`
	DishID    uint      `gorm:"not null;index:idx_week_dish,unique" json:"dish_id"`
	Score     float64   `json:"score"`

	// Stats captured for the week at build time
	TotalSwipes int64   `json:"total_swipes"`
	RightSwipes int64   `json:"right_swipes"`
	ReviewCount int64   `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"`

	Dish Dish `gorm:"foreignKey:DishID" json:"dish"`

	CreatedAt time.Time `json:"created_at"`
}

func (WeeklyRanking) TableName() string {
	return "weekly_rankings"
}
