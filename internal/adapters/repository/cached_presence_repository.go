package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
)

const cacheKeyPrefix = "presence:index"

var _ domain.PresenceRepository = (*CachedPresenceRepository)(nil)

// CachedPresenceRepository keeps the parsed index in Redis. When the wrapped
// repository can fingerprint its source the key includes the fingerprint, so
// a changed file is never served from a stale entry.
type CachedPresenceRepository struct {
	next  domain.PresenceRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedPresenceRepository(next domain.PresenceRepository, cache *redis.Client, ttl time.Duration) *CachedPresenceRepository {
	return &CachedPresenceRepository{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *CachedPresenceRepository) cacheKey(ctx context.Context) (string, error) {
	fp, ok := r.next.(domain.Fingerprinter)
	if !ok {
		return cacheKeyPrefix, nil
	}
	sum, err := fp.Fingerprint(ctx)
	if err != nil {
		return "", err
	}
	return cacheKeyPrefix + ":" + sum, nil
}

func (r *CachedPresenceRepository) Load(ctx context.Context) (domain.PresenceIndex, error) {
	key, err := r.cacheKey(ctx)
	if err != nil {
		return nil, err
	}

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var idx domain.PresenceIndex
		if err := json.Unmarshal([]byte(val), &idx); err == nil && idx != nil {
			return idx, nil
		}

		log.Printf("[CACHE] Corrupted index under %s, cleaning up key", key)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	idx, err := r.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(idx); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return idx, nil
}

// Invalidate drops every cached index regardless of fingerprint.
func (r *CachedPresenceRepository) Invalidate(ctx context.Context) error {
	iter := r.cache.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.cache.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
