// Package cache is a key/value cache for donor-matching results: redis first,
// with a transparent in-process fallback when redis is unreachable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"bloodlink/internal/config"
	"bloodlink/internal/domain"
)

type Service struct {
	logger  *slog.Logger
	rdb     *goredis.Client
	mem     *memoryStore
	ttl     time.Duration
	backoff time.Duration

	hits   atomic.Int64
	misses atomic.Int64
	writes atomic.Int64

	mu      sync.Mutex
	down    bool
	retryAt time.Time

	now func() time.Time
}

// New builds the cache service. rdb may be nil, in which case the service is
// memory-only from the start.
func New(rdb *goredis.Client, cfg config.CacheConfig, logger *slog.Logger) *Service {
	s := &Service{
		logger:  logger,
		rdb:     rdb,
		mem:     newMemoryStore(),
		ttl:     cfg.TTL,
		backoff: cfg.RetryBackoff,
		now:     time.Now,
	}
	go s.mem.janitor()
	return s
}

// Get returns the stored raw value, or nil and false on a miss. Redis errors
// never propagate; they flip the service onto the memory store.
func (s *Service) Get(ctx context.Context, key string) ([]byte, bool) {
	if s.redisAvailable() {
		data, err := s.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			s.markUp()
			s.hits.Add(1)
			return data, true
		case errors.Is(err, goredis.Nil):
			s.markUp()
			s.misses.Add(1)
			return nil, false
		default:
			s.markDown(err)
		}
	}

	if data, ok := s.mem.get(key, s.now()); ok {
		s.hits.Add(1)
		return data, true
	}
	s.misses.Add(1)
	return nil, false
}

// GetJSON is Get plus unmarshalling into dst.
func (s *Service) GetJSON(ctx context.Context, key string, dst any) bool {
	data, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("cache entry unmarshal failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

// Set writes to whichever store is currently active. ttl <= 0 selects the
// configured default.
func (s *Service) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("cache value marshal failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	s.writes.Add(1)

	if s.redisAvailable() {
		if err := s.rdb.Set(ctx, key, data, ttl).Err(); err == nil {
			s.markUp()
			return
		} else {
			s.markDown(err)
		}
	}

	s.mem.set(key, data, s.now().Add(ttl))
}

// InvalidatePrefix deletes every key starting with prefix from both stores.
// Called after any write that could change the donor-matching result set.
func (s *Service) InvalidatePrefix(ctx context.Context, prefix string) {
	if s.redisAvailable() {
		if err := s.invalidateRedisPrefix(ctx, prefix); err != nil {
			s.markDown(err)
		}
	}
	s.mem.deletePrefix(prefix)
}

func (s *Service) invalidateRedisPrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *Service) Stats() domain.CacheStats {
	s.mu.Lock()
	connected := s.rdb != nil && !s.down
	s.mu.Unlock()

	return domain.CacheStats{
		Hits:           s.hits.Load(),
		Misses:         s.misses.Load(),
		Writes:         s.writes.Load(),
		RedisConnected: connected,
		Fallback:       !connected,
		MemoryKeys:     s.mem.len(),
	}
}

// redisAvailable reports whether the next operation should try redis. A down
// store is retried at most once per backoff interval.
func (s *Service) redisAvailable() bool {
	if s.rdb == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.down {
		return true
	}
	if s.now().After(s.retryAt) {
		s.retryAt = s.now().Add(s.backoff)
		return true
	}
	return false
}

func (s *Service) markDown(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.down {
		s.logger.Warn("redis cache unavailable, falling back to memory", slog.Any("error", err))
	}
	s.down = true
	s.retryAt = s.now().Add(s.backoff)
}

func (s *Service) markUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		s.logger.Info("redis cache reachable again")
	}
	s.down = false
}
