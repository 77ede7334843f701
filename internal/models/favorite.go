package models

import (
	"time"
)

// Favorite marks a dish a user wants to keep. Unique per user-dish pair;
// only the owning user may remove it.
type Favorite struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index:idx_fav_user_dish,unique" json:"user_id"`
	DishID uint   `gorm:"not null;index:idx_fav_user_dish,unique;index" json:"dish_id"`
	Notes  string `gorm:"type:text" json:"notes"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Dish Dish `gorm:"foreignKey:DishID" json:"dish"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
