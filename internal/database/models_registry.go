package database

import (
	"fmt"

	"swipebite/internal/models"

	"gorm.io/gorm"
)

// RegisteredModels is the canonical, ordered list of models for AutoMigrate.
// Order matters: referenced tables must be created before their dependents.
func RegisteredModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Cuisine{},
		&models.Dish{},
		&models.Restaurant{},
		&models.RestaurantDish{},
		&models.SwipeAction{},
		&models.Favorite{},
		&models.Review{},
		&models.ReviewHelpful{},
		&models.TrendingDish{},
		&models.WeeklyRanking{},
		&models.UserBadge{},
		&models.AssistantQueryLog{},
	}
}

// Migrate runs AutoMigrate over the registered model set.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(RegisteredModels()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
