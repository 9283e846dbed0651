package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"StockPulse/internal/model"
)

// keyPrefix namespaces this service's entries inside a shared Redis.
const keyPrefix = "stockpulse:"

// RedisStore backs the cache with Redis so multiple processes share
// one warm cache. Entries expire server-side via the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects and pings the Redis instance.
func NewRedisStore(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// getJSON loads and unmarshals one entry into dst. A transport or
// decode problem is logged and reported as a miss so the caller falls
// through to a fresh fetch.
func (s *RedisStore) getJSON(ctx context.Context, key string, dst any) bool {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARN] redis cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[WARN] redis cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] redis cache marshal %s: %v", key, err)
		return
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, s.ttl).Err(); err != nil {
		log.Printf("[WARN] redis cache set %s: %v", key, err)
	}
}

func (s *RedisStore) GetQuote(ctx context.Context, key string) (*model.Quote, bool) {
	var q model.Quote
	if !s.getJSON(ctx, key, &q) {
		return nil, false
	}
	return &q, true
}

func (s *RedisStore) SetQuote(ctx context.Context, key string, q *model.Quote) {
	s.setJSON(ctx, key, q)
}

func (s *RedisStore) GetBars(ctx context.Context, key string) ([]model.HistoricalBar, bool) {
	var bars []model.HistoricalBar
	if !s.getJSON(ctx, key, &bars) || len(bars) == 0 {
		return nil, false
	}
	return bars, true
}

func (s *RedisStore) SetBars(ctx context.Context, key string, bars []model.HistoricalBar) {
	s.setJSON(ctx, key, bars)
}

func (s *RedisStore) GetIndicators(ctx context.Context, key string) (*model.TechnicalIndicatorSet, bool) {
	var ind model.TechnicalIndicatorSet
	if !s.getJSON(ctx, key, &ind) {
		return nil, false
	}
	return &ind, true
}

func (s *RedisStore) SetIndicators(ctx context.Context, key string, ind *model.TechnicalIndicatorSet) {
	s.setJSON(ctx, key, ind)
}

func (s *RedisStore) Invalidate(ctx context.Context, key string) {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		log.Printf("[WARN] redis cache del %s: %v", key, err)
	}
}

// Clear drops every entry under this service's prefix, leaving other
// tenants of the Redis instance alone.
func (s *RedisStore) Clear(ctx context.Context) {
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[WARN] redis cache clear %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[WARN] redis cache scan: %v", err)
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
