package sessions

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
)

// Storage keeps session tokens in redis, one key per token holding the user id.
// A missing token means the session expired or never existed.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Get(ctx context.Context, token string) (uint, error) {
	value, err := s.redis.Get(ctx, token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, errorz.ErrNotAuthenticated
		}
		return 0, err
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errorz.ErrNotAuthenticated
	}
	return uint(userID), nil
}

func (s *Storage) Set(ctx context.Context, token string, userID uint, expiration time.Duration) error {
	return s.redis.Set(ctx, token, strconv.FormatUint(uint64(userID), 10), expiration).Err()
}

func (s *Storage) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, token).Err()
}
