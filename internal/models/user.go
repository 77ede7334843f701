// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Diet types a user can declare on their profile.
const (
	DietNone        = "none"
	DietVegetarian  = "vegetarian"
	DietVegan       = "vegan"
	DietPescatarian = "pescatarian"
	DietKeto        = "keto"
	DietHalal       = "halal"
	DietKosher      = "kosher"
)

// User represents an account with food preferences used by discovery and
// the recommendation assistant.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	City string `json:"city"`
	Bio  string `gorm:"type:text" json:"bio"`

	// Dietary preferences
	DietType         string  `gorm:"size:20;default:none" json:"diet_type"`
	Allergies        string  `gorm:"type:text" json:"allergies"`         // comma-separated
	FavoriteCuisines string  `gorm:"type:text" json:"favorite_cuisines"` // comma-separated
	DailyCalorieGoal int     `json:"daily_calorie_goal"`
	MaxDistanceMiles float64 `gorm:"default:5" json:"max_distance_miles"`

	IsStaff bool `gorm:"default:false" json:"is_staff"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AllergyList splits the comma-separated allergies field.
func (u *User) AllergyList() []string {
	return splitCSV(u.Allergies)
}

// FavoriteCuisineList splits the comma-separated favorite cuisines field.
func (u *User) FavoriteCuisineList() []string {
	return splitCSV(u.FavoriteCuisines)
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
