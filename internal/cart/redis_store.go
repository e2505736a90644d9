package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "greenplace:cart"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
}

// RedisStore keeps each session's slot under greenplace:cart:<session>. Reads
// and writes extend the slot's TTL.
type RedisStore struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

// NewRedisStore connects to url and verifies the connection.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{store: raw, raw: raw, ttl: ttl}, nil
}

func (s *RedisStore) key(session string) string {
	return keyNamespace + ":" + session
}

func (s *RedisStore) Load(ctx context.Context, session string) ([]byte, error) {
	key := s.key(session)

	data, err := s.store.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if s.ttl > 0 {
		if err := s.store.Expire(ctx, key, s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, session string, data []byte) error {
	if err := s.store.Set(ctx, s.key(session), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}
