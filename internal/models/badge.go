package models

import (
	"time"
)

// Badge types users can earn. Grants are monotonic: once earned a badge
// is never revoked.
const (
	BadgeSwiper   = "swiper"
	BadgeReviewer = "reviewer"
	BadgeExplorer = "explorer"
	BadgeFoodie   = "foodie"
	BadgeSocial   = "social"
)

// UserBadge is an achievement grant. Unique per (user, badge_type) so
// concurrent evaluation cannot produce duplicates.
type UserBadge struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;index:idx_user_badge,unique" json:"user_id"`
	BadgeType string `gorm:"size:20;not null;index:idx_user_badge,unique" json:"badge_type"`

	Name        string `gorm:"size:100" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:20" json:"icon"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	EarnedAt time.Time `json:"earned_at"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

// UserStats aggregates the counters badge predicates evaluate against.
type UserStats struct {
	UserID                uint  `json:"user_id"`
	TotalSwipes           int64 `json:"total_swipes"`
	ReviewsWritten        int64 `json:"reviews_written"`
	DistinctCuisinesLiked int64 `json:"distinct_cuisines_liked"`
	Favorites             int64 `json:"favorites"`
	HelpfulVotesReceived  int64 `json:"helpful_votes_received"`
}
