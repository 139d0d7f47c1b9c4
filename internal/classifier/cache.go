package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedClient memoizes judgments in Redis, keyed by a hash of the
// description. Identical resubmissions (and retries) skip the NLP call.
type CachedClient struct {
	next  Client
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedClient wraps next with a Redis-backed cache.
func NewCachedClient(next Client, rdb *redis.Client, ttl time.Duration) *CachedClient {
	return &CachedClient{next: next, redis: rdb, ttl: ttl}
}

func cacheKey(description string) string {
	sum := sha256.Sum256([]byte(description))
	return "judgment:" + hex.EncodeToString(sum[:16])
}

// Analyze consults the cache first; cache faults are logged and ignored
// so Redis trouble never degrades classification itself.
func (c *CachedClient) Analyze(ctx context.Context, description string) (*Judgment, error) {
	key := cacheKey(description)

	cached, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var j Judgment
		if err := json.Unmarshal([]byte(cached), &j); err == nil {
			return &j, nil
		}
		// Poisoned entry, drop it and fall through.
		c.redis.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("ERROR: judgment cache read failed: %v", err)
	}

	j, err := c.next.Analyze(ctx, description)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(j); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("ERROR: judgment cache write failed: %v", err)
		}
	}
	return j, nil
}
