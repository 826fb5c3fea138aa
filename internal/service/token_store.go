package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore holds the currently issued token per username so that a password
// change can invalidate an outstanding session.
type TokenStore interface {
	Save(ctx context.Context, username, token string, ttl time.Duration) error
	Get(ctx context.Context, username string) (string, error)
	Delete(ctx context.Context, username string) error
}

type redisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) TokenStore {
	return &redisTokenStore{rdb: rdb}
}

func (s *redisTokenStore) Save(ctx context.Context, username, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, "token:"+username, token, ttl).Err()
}

func (s *redisTokenStore) Get(ctx context.Context, username string) (string, error) {
	val, err := s.rdb.Get(ctx, "token:"+username).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *redisTokenStore) Delete(ctx context.Context, username string) error {
	return s.rdb.Del(ctx, "token:"+username).Err()
}
