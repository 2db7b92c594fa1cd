package kv

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"
)

// RedisStore keeps the same flat key namespace in Redis, for installations
// that already run one. Values never expire; the store owns its lifecycle.
type RedisStore struct {
	client *goRedis.Client
}

// RedisOptions carries the subset of connection settings read from config.
type RedisOptions struct {
	URL      string
	Password string
	DB       int
}

// OpenRedis creates a Redis-backed store and performs a health check.
func OpenRedis(opts RedisOptions) (*RedisStore, error) {
	parsed, err := goRedis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.Password != "" {
		parsed.Password = opts.Password
	}
	if opts.DB != 0 {
		parsed.DB = opts.DB
	}

	client := goRedis.NewClient(parsed)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == goRedis.Nil {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
