package shared_utils

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	redisclient "github.com/rideon/rental/config/redis"
)

const REFRESH_TOKEN_PREFIX = "refresh_token:"

// ErrRefreshTokenNotFound is returned when a refresh token has been
// revoked, rotated away, or has expired out of Redis.
var ErrRefreshTokenNotFound = errors.New("refresh token not found or expired")

// StoreRefreshToken records a refresh token jti for a user so it can be
// validated and revoked later.
func StoreRefreshToken(ctx context.Context, jti string, userID int64, expiry time.Duration) error {
	rdb, err := redisclient.GetRedisClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to init redis client: %w", err)
	}

	key := REFRESH_TOKEN_PREFIX + jti
	if err := rdb.Set(ctx, key, strconv.FormatInt(userID, 10), expiry).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// RefreshTokenUserID resolves the user a stored refresh token belongs to.
func RefreshTokenUserID(ctx context.Context, jti string) (int64, error) {
	rdb, err := redisclient.GetRedisClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to init redis client: %w", err)
	}

	val, err := rdb.Get(ctx, REFRESH_TOKEN_PREFIX+jti).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrRefreshTokenNotFound
		}
		return 0, fmt.Errorf("failed to read refresh token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token entry: %w", err)
	}
	return userID, nil
}

// RevokeRefreshToken deletes a stored refresh token.
func RevokeRefreshToken(ctx context.Context, jti string) error {
	rdb, err := redisclient.GetRedisClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to init redis client: %w", err)
	}

	if err := rdb.Del(ctx, REFRESH_TOKEN_PREFIX+jti).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
