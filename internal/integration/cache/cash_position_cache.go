// Package cache provides Redis-backed caches for derived ledger figures.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

const cashPositionKey = "ledgerly:cash_position"

// CashPositionCache implements adapter.CashPositionCache on Redis.
type CashPositionCache struct {
	client *redis.Client
	key    string
}

// NewCashPositionCache creates a cache on an existing Redis client. The caller
// keeps ownership of the client.
func NewCashPositionCache(client *redis.Client) *CashPositionCache {
	return &CashPositionCache{
		client: client,
		key:    cashPositionKey,
	}
}

// Get returns the cached position, or nil on a cache miss.
func (c *CashPositionCache) Get(ctx context.Context) (*valueobject.CashPosition, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cash position from cache: %w", err)
	}

	var position valueobject.CashPosition
	if err := json.Unmarshal(data, &position); err != nil {
		slog.Warn("Dropping corrupted cash position cache entry", "error", err)
		_ = c.client.Del(ctx, c.key).Err()
		return nil, nil
	}
	return &position, nil
}

// Set stores the position for at most ttl.
func (c *CashPositionCache) Set(ctx context.Context, position *valueobject.CashPosition, ttl time.Duration) error {
	if position == nil {
		return nil
	}
	data, err := json.Marshal(position)
	if err != nil {
		return fmt.Errorf("failed to marshal cash position: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache cash position: %w", err)
	}
	return nil
}

// Invalidate drops the cached position.
func (c *CashPositionCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cash position: %w", err)
	}
	return nil
}

var _ adapter.CashPositionCache = (*CashPositionCache)(nil)
