package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cached blocked-id sets go stale within this window; block mutations and
// the notify worker invalidate them eagerly, the TTL is the backstop.
const BlockedIDsTTL = 5 * time.Minute

// Cache key kinds for the two resolver sets.
const (
	CacheKindVideos   = "videos"
	CacheKindCreators = "creators"
)

// CacheService provides a Redis cache-aside layer for the blocked-id sets
// the resolvers compute per viewer.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

// GetBlockedIDs retrieves a cached blocked-id set. The second return is
// false on a miss, a disabled cache, or any Redis error — callers fall
// through to the database.
func (c *CacheService) GetBlockedIDs(ctx context.Context, kind string, viewerID int64) ([]int64, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, blockedKey(kind, viewerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// SetBlockedIDs stores a blocked-id set for a viewer.
func (c *CacheService) SetBlockedIDs(ctx context.Context, kind string, viewerID int64, ids []int64) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, blockedKey(kind, viewerID), b, BlockedIDsTTL).Err()
}

// InvalidateViewer drops both cached sets for a viewer (called after block
// mutations).
func (c *CacheService) InvalidateViewer(ctx context.Context, viewerID int64) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx,
		blockedKey(CacheKindVideos, viewerID),
		blockedKey(CacheKindCreators, viewerID),
	).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func blockedKey(kind string, viewerID int64) string {
	return fmt.Sprintf("blocked:%s:%d", kind, viewerID)
}
