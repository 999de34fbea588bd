package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisService wraps the shared client plus the JSON cache helpers used for
// dashboard responses.
type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisService) Ctx() context.Context {
	return s.ctx
}

// CacheJSON stores v as JSON under key with the given TTL.
func (s *RedisService) CacheJSON(key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(s.ctx, key, data, ttl).Err()
}

// Delete removes a cached key. Missing keys are not an error.
func (s *RedisService) Delete(ctx context.Context, keys ...string) error {
	return s.rdb.Del(ctx, keys...).Err()
}

// FetchJSON loads a cached JSON value into dest. The bool reports whether
// the key existed.
func (s *RedisService) FetchJSON(key string, dest any) (bool, error) {
	data, err := s.rdb.Get(s.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}
