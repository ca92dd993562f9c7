package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appidentity "github.com/sppg/backend/internal/application/identity"
)

const blacklistKeyPrefix = "token:blacklist:"

// RedisTokenBlacklist revokes token IDs in redis with a TTL matching the
// token's remaining lifetime, so entries expire together with the token.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist creates a blacklist over the given redis client
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Revoke marks the token ID as revoked until the given time
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// Already expired, nothing to revoke
		return nil
	}
	key := blacklistKeyPrefix + tokenID
	if err := b.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token ID has been revoked
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

var _ appidentity.TokenBlacklist = (*RedisTokenBlacklist)(nil)
