package models

import (
	"time"

	"gorm.io/gorm"
)

// Rating bounds for reviews.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is a rated write-up of a dish. One per user-dish pair; the
// rating must stay within [RatingMin, RatingMax].
type Review struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index:idx_review_user_dish,unique" json:"user_id"`
	DishID uint `gorm:"not null;index:idx_review_user_dish,unique;index" json:"dish_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Title   string `gorm:"size:200" json:"title"`
	Content string `gorm:"type:text" json:"content"`

	// HelpfulCount mirrors the number of ReviewHelpful rows; kept in sync
	// by the review service on every vote toggle.
	HelpfulCount int `gorm:"default:0" json:"helpful_count"`

	User User `gorm:"foreignKey:UserID" json:"user"`
	Dish Dish `gorm:"foreignKey:DishID" json:"-"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidRating reports whether r is within the allowed rating range.
func ValidRating(r int) bool {
	return r >= RatingMin && r <= RatingMax
}

// ReviewHelpful records that a user found a review helpful. Unique per
// user-review pair; voting again removes the vote.
type ReviewHelpful struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;index:idx_helpful_user_review,unique" json:"user_id"`
	ReviewID uint `gorm:"not null;index:idx_helpful_user_review,unique;index" json:"review_id"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Review Review `gorm:"foreignKey:ReviewID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (ReviewHelpful) TableName() string {
	return "review_helpfuls"
}

// RatingDistribution counts reviews per star value for a dish.
type RatingDistribution map[int]int64
