package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DistributedCache keeps a short-lived local copy in front of Redis.
type DistributedCache struct {
	local     *Cache
	redis     redis.UniversalClient
	keyPrefix string
	localTTL  time.Duration
}

func NewDistributedCache(client redis.UniversalClient, keyPrefix string, localOptions Options) *DistributedCache {
	return &DistributedCache{
		local:     NewCache(localOptions),
		redis:     client,
		keyPrefix: keyPrefix,
		localTTL:  time.Minute,
	}
}

func (dc *DistributedCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	localTTL := ttl
	if ttl <= 0 || ttl > dc.localTTL {
		localTTL = dc.localTTL
	}
	dc.local.Set(key, data, localTTL)

	return dc.redis.Set(ctx, dc.keyPrefix+key, data, ttl).Err()
}

// Get decodes the cached value into valuePtr and reports whether it was found.
func (dc *DistributedCache) Get(ctx context.Context, key string, valuePtr any) (bool, error) {
	if data, found := dc.local.Get(key); found {
		return true, json.Unmarshal(data, valuePtr)
	}

	data, err := dc.redis.Get(ctx, dc.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, valuePtr); err != nil {
		return false, err
	}
	dc.local.Set(key, data, dc.localTTL)
	return true, nil
}

func (dc *DistributedCache) Delete(ctx context.Context, key string) error {
	dc.local.Delete(key)
	return dc.redis.Del(ctx, dc.keyPrefix+key).Err()
}

func (dc *DistributedCache) Close() {
	dc.local.Close()
}
