package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// BalanceCache is a read-through cache for points balances. It is an
// optimization only: callers fall back to the ledger on any error and
// every ledger mutation invalidates the entry.
type BalanceCache interface {
	Get(ctx context.Context, userID int32) (int32, error)
	Set(ctx context.Context, userID int32, balance int32) error
	Invalidate(ctx context.Context, userID int32) error
	Close() error
}

type balanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBalanceCache(addr string, ttl time.Duration) (BalanceCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return &balanceCache{client: client, ttl: ttl}, nil
}

func balanceKey(userID int32) string {
	return fmt.Sprintf("points:balance:%d", userID)
}

func (c *balanceCache) Get(ctx context.Context, userID int32) (int32, error) {
	val, err := c.client.Get(ctx, balanceKey(userID)).Result()
	if err == redis.Nil {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, err
	}
	balance, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return 0, ErrCacheMiss
	}
	return int32(balance), nil
}

func (c *balanceCache) Set(ctx context.Context, userID int32, balance int32) error {
	return c.client.Set(ctx, balanceKey(userID), strconv.FormatInt(int64(balance), 10), c.ttl).Err()
}

func (c *balanceCache) Invalidate(ctx context.Context, userID int32) error {
	return c.client.Del(ctx, balanceKey(userID)).Err()
}

func (c *balanceCache) Close() error {
	return c.client.Close()
}
