package redis

import (
	"context"
	"fmt"
	"time"

	redisclient "github.com/muhammadheryan/stock-coordinator/cmd/redis"
)

// Repository invalidates derived stock views after ledger mutations. All
// methods are no-ops when no Redis client is configured so the primary write
// path never depends on the cache being up.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	InvalidateAvailability(ctx context.Context, branchID, productID uint64, variantSKU string) error
}

type redis struct {
}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

// Get retrieves a value by key from Redis
func (r *redis) Get(ctx context.Context, key string) (string, error) {
	client := redisclient.Get()
	if client == nil {
		return "", nil
	}
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetWithTTL stores a key/value pair with time-to-live
func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Set(ctx, key, value, ttl).Err()
}

// InvalidateAvailability drops the cached availability view for one ledger row.
func (r *redis) InvalidateAvailability(ctx context.Context, branchID, productID uint64, variantSKU string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := AvailabilityKey(branchID, productID, variantSKU)
	return client.Del(ctx, key).Err()
}

// AvailabilityKey is the cache key read by the inventory read model.
func AvailabilityKey(branchID, productID uint64, variantSKU string) string {
	return fmt.Sprintf("stock:available:%d:%d:%s", branchID, productID, variantSKU)
}
