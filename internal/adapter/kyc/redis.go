package kyc

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kyc:eligible:"

// RedisStore keeps one flag per user under kyc:eligible:<user_id>. A missing
// key means not eligible.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func key(userID string) string { return keyPrefix + userID }

func (s *RedisStore) IsEligible(ctx context.Context, userID string) (bool, error) {
	v, err := s.rdb.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

func (s *RedisStore) SetEligible(ctx context.Context, userID string, eligible bool) error {
	if !eligible {
		return s.rdb.Del(ctx, key(userID)).Err()
	}
	return s.rdb.Set(ctx, key(userID), "1", 0).Err()
}
