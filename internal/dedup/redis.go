package dedup

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisKeyPrefix = "sessionob:dedup:"

// RedisStore keeps fingerprints in Redis so restarts do not replay the last
// alert for every instrument. Redis failures fail open: a duplicate
// notification beats a silently dropped one.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by the given Redis address
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// NewRedisStoreWithClient wraps an existing client (used by tests)
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping verifies connectivity at startup
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) ShouldAlert(ctx context.Context, instrument, fingerprint string) bool {
	last, err := s.client.Get(ctx, redisKeyPrefix+instrument).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("instrument", instrument).Msg("dedup read failed, alerting anyway")
		}
		return true
	}
	return last != fingerprint
}

func (s *RedisStore) Record(ctx context.Context, instrument, fingerprint string) {
	if err := s.client.Set(ctx, redisKeyPrefix+instrument, fingerprint, 0).Err(); err != nil {
		log.Warn().Err(err).Str("instrument", instrument).Msg("dedup write failed")
	}
}
