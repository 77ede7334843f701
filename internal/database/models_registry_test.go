package database

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRegisteredModels_NoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range RegisteredModels() {
		key := reflect.TypeOf(m).Elem().Name()
		assert.False(t, seen[key], "duplicate model registered: %s", key)
		seen[key] = true
	}
	assert.GreaterOrEqual(t, len(seen), 13)
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{
		"users", "cuisines", "dishes", "restaurants", "restaurant_dishes",
		"swipe_actions", "favorites", "reviews", "review_helpfuls",
		"trending_dishes", "weekly_rankings", "user_badges", "assistant_query_logs",
	} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}
