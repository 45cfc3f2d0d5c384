package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// BalanceCache implements usecase.BalanceCache using Redis. Balances are
// stored as decimal strings; a missing key is a miss, not an error.
type BalanceCache struct {
	client *redis.Client
	prefix string
}

// NewBalanceCache creates a new BalanceCache.
func NewBalanceCache(client *redis.Client) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "balance:",
	}
}

// Get retrieves a cached tenant balance.
func (c *BalanceCache) Get(ctx context.Context, tenantID string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+tenantID).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	balance, err := decimal.NewFromString(val)
	if err != nil {
		// A corrupt entry reads as a miss.
		return decimal.Zero, false, nil
	}

	return balance, true, nil
}

// Set stores a tenant balance with TTL.
func (c *BalanceCache) Set(ctx context.Context, tenantID string, balance decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+tenantID, balance.String(), ttl).Err()
}

// Delete invalidates a tenant's cached balance.
func (c *BalanceCache) Delete(ctx context.Context, tenantID string) error {
	return c.client.Del(ctx, c.prefix+tenantID).Err()
}
