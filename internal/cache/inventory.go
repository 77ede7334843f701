package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	DishKeyPrefix      = "dish:%d"
	DishStatsKeyPrefix = "dish:%d:stats"
	TrendingKeyPrefix  = "trending:%dh:%gh" // window hours, half-life hours
	UserStatsKeyPrefix = "user:%d:stats"
)

const (
	DishTTL      = 30 * time.Minute
	DishStatsTTL = 2 * time.Minute
	TrendingTTL  = 5 * time.Minute
	UserStatsTTL = 2 * time.Minute
)

func DishKey(dishID uint) string {
	return fmt.Sprintf(DishKeyPrefix, dishID)
}

func DishStatsKey(dishID uint) string {
	return fmt.Sprintf(DishStatsKeyPrefix, dishID)
}

func TrendingKey(windowHours int, halfLifeHours float64) string {
	return fmt.Sprintf(TrendingKeyPrefix, windowHours, halfLifeHours)
}

func UserStatsKey(userID uint) string {
	return fmt.Sprintf(UserStatsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateDish drops both the dish record and its stats aggregate.
func InvalidateDish(ctx context.Context, dishID uint) {
	Invalidate(ctx, DishKey(dishID), DishStatsKey(dishID))
}

// InvalidateDishStats drops the stats aggregate after an interaction write.
func InvalidateDishStats(ctx context.Context, dishID uint) {
	Invalidate(ctx, DishStatsKey(dishID))
}

// InvalidateUserStats drops the per-user counters used by badge evaluation.
func InvalidateUserStats(ctx context.Context, userID uint) {
	Invalidate(ctx, UserStatsKey(userID))
}
