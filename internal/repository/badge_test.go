package repository

import (
	"context"
	"testing"
	"time"

	"swipebite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeRepository_Grant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgeRepository(db)
	ctx := context.Background()

	user := models.User{Username: "earner", Email: "earner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	granted, err := repo.Grant(ctx, &models.UserBadge{
		UserID:    user.ID,
		BadgeType: models.BadgeSwiper,
		Name:      "Serial Swiper",
		EarnedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.True(t, granted)

	// Re-granting the same badge is a no-op, not an error.
	granted, err = repo.Grant(ctx, &models.UserBadge{
		UserID:    user.ID,
		BadgeType: models.BadgeSwiper,
		Name:      "Serial Swiper",
		EarnedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.False(t, granted)

	var count int64
	require.NoError(t, db.Model(&models.UserBadge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBadgeRepository_TypesByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgeRepository(db)
	ctx := context.Background()

	user := models.User{Username: "typed", Email: "typed@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	for _, badgeType := range []string{models.BadgeSwiper, models.BadgeExplorer} {
		_, err := repo.Grant(ctx, &models.UserBadge{UserID: user.ID, BadgeType: badgeType, EarnedAt: time.Now().UTC()})
		require.NoError(t, err)
	}

	held, err := repo.TypesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, held[models.BadgeSwiper])
	assert.True(t, held[models.BadgeExplorer])
	assert.False(t, held[models.BadgeFoodie])
}

func TestBadgeRepository_CountByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgeRepository(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		u := models.User{Username: "cnt" + string(rune('a'+i)), Email: "cnt" + string(rune('a'+i)) + "@example.com", PasswordHash: "x"}
		require.NoError(t, db.Create(&u).Error)
		_, err := repo.Grant(ctx, &models.UserBadge{UserID: u.ID, BadgeType: models.BadgeSwiper, EarnedAt: time.Now().UTC()})
		require.NoError(t, err)
	}

	counts, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[models.BadgeSwiper])
}
