package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Restaurant serves one or more dishes; association carries menu pricing.
type Restaurant struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Address   string  `gorm:"size:300" json:"address"`
	City      string  `gorm:"size:100;index" json:"city"`
	State     string  `gorm:"size:50" json:"state"`
	ZipCode   string  `gorm:"size:10" json:"zip_code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Phone      string   `gorm:"size:20" json:"phone"`
	Website    string   `gorm:"size:500" json:"website"`
	PriceRange string   `gorm:"size:4;default:$$" json:"price_range"`
	CuisineID  *uint    `gorm:"index" json:"cuisine_id,omitempty"`
	Cuisine    *Cuisine `gorm:"foreignKey:CuisineID" json:"cuisine,omitempty"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullAddress renders the single-line postal address.
func (r *Restaurant) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", r.Address, r.City, r.State, r.ZipCode)
}

// RestaurantDish links a restaurant to a dish on its menu with pricing.
type RestaurantDish struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RestaurantID uint `gorm:"not null;index:idx_restaurant_dish,unique" json:"restaurant_id"`
	DishID       uint `gorm:"not null;index:idx_restaurant_dish,unique" json:"dish_id"`

	Price       float64 `json:"price"`
	IsAvailable bool    `gorm:"default:true" json:"is_available"`

	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Dish       Dish       `gorm:"foreignKey:DishID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RestaurantDish) TableName() string {
	return "restaurant_dishes"
}
