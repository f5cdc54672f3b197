package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit arms a per-user cooldown for an action. It returns
// false when the cooldown is still active. A nil client disables limiting.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID, action string, window time.Duration) (bool, error) {
	if rdb == nil || window <= 0 {
		return true, nil
	}

	key := rateLimitKey(userID, action)
	wasSet, err := rdb.SetNX(ctx, key, "locked", window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// ClearRateLimit releases the cooldown early, used when the limited action
// failed after the cooldown was armed.
func ClearRateLimit(ctx context.Context, rdb *redis.Client, userID, action string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, rateLimitKey(userID, action)).Err()
}

func rateLimitKey(userID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID, action)
}
