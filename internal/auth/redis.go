package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps the session whitelist in Redis. Key layout is
// "whitelist:<userId>" with a plain-string token value and a per-entry TTL;
// SET and DEL are atomic single-key operations, so no locking is needed for
// the last-write-wins overwrite semantics.
type RedisSessionStore struct {
	client *redis.Client
}

var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore wraps an existing Redis client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(userID int64) string {
	return whitelistPrefix + strconv.FormatInt(userID, 10)
}

func (s *RedisSessionStore) Put(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(userID), token, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, userID int64) (string, bool, error) {
	val, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// IsLive fails closed: any error talking to Redis denies the token.
func (s *RedisSessionStore) IsLive(ctx context.Context, userID int64, token string) bool {
	val, ok, err := s.Get(ctx, userID)
	if err != nil || !ok {
		return false
	}
	return val == token
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}
