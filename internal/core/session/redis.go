package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type RedisStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedis(addr, pass string, db int, ttl time.Duration) *RedisStore {
	return &RedisStore{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		TTL: ttl,
	}
}

func (s *RedisStore) Set(ctx context.Context, id string, d Data) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.RDB.Set(ctx, keyPrefix+id, b, s.TTL).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Data, error) {
	b, err := s.RDB.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	// sliding expiry
	_ = s.RDB.Expire(ctx, keyPrefix+id, s.TTL).Err()
	return &d, nil
}

func (s *RedisStore) Invalidate(ctx context.Context, id string) error {
	return s.RDB.Del(ctx, keyPrefix+id).Err()
}
