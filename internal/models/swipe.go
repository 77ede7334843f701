package models

import (
	"time"
)

// Swipe directions.
const (
	SwipeRight = "right" // like
	SwipeLeft  = "left"  // pass
)

// SwipeAction records a user's verdict on a dish. One row per user-dish
// pair; re-swiping the same dish updates the direction in place.
type SwipeAction struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;index:idx_swipe_user_dish,unique" json:"user_id"`
	DishID    uint   `gorm:"not null;index:idx_swipe_user_dish,unique;index" json:"dish_id"`
	Direction string `gorm:"size:10;not null" json:"direction"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Dish Dish `gorm:"foreignKey:DishID" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SwipeAction) TableName() string {
	return "swipe_actions"
}

// SwipeStats summarizes a user's swiping activity.
type SwipeStats struct {
	TotalSwipes    int64          `json:"total_swipes"`
	RightSwipes    int64          `json:"right_swipes"`
	LeftSwipes     int64          `json:"left_swipes"`
	MatchRate      float64        `json:"match_rate"`
	TotalFavorites int64          `json:"total_favorites"`
	TopCuisines    []CuisineCount `json:"top_cuisines"`
}

// CuisineCount pairs a cuisine name with a swipe count for stats output.
type CuisineCount struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Count int64  `json:"count"`
}
