package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	accessKeySuffix  = ":access_token"
	refreshKeySuffix = ":refresh_token"
)

// RedisStore persists token pairs in Redis, one access/refresh key pair per
// browser session. Keys expire after the configured session TTL so abandoned
// sessions clean themselves up.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed token store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func accessKey(sessionID string) string {
	return "session:" + sessionID + accessKeySuffix
}

func refreshKey(sessionID string) string {
	return "session:" + sessionID + refreshKeySuffix
}

// Pair reads both tokens in a single round trip. Missing keys read as empty
// strings - an absent session is an unauthenticated session, not an error.
func (s *RedisStore) Pair(ctx context.Context, sessionID string) (Pair, error) {
	if sessionID == "" {
		return Pair{}, fmt.Errorf("sessionID is required")
	}

	values, err := s.client.MGet(ctx, accessKey(sessionID), refreshKey(sessionID)).Result()
	if err != nil {
		return Pair{}, fmt.Errorf("redis MGET: %w", err)
	}

	var pair Pair
	if v, ok := values[0].(string); ok {
		pair.Access = v
	}
	if v, ok := values[1].(string); ok {
		pair.Refresh = v
	}
	return pair, nil
}

// SetPair writes both tokens in one transaction so a concurrent reader never
// sees a half-written pair.
func (s *RedisStore) SetPair(ctx context.Context, sessionID string, pair Pair) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, accessKey(sessionID), pair.Access, s.ttl)
	pipe.Set(ctx, refreshKey(sessionID), pair.Refresh, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis SET pair: %w", err)
	}
	return nil
}

// SetAccess replaces the access token and renews both TTLs - a refresh proves
// the session is still in use.
func (s *RedisStore) SetAccess(ctx context.Context, sessionID, access string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, accessKey(sessionID), access, s.ttl)
	pipe.Expire(ctx, refreshKey(sessionID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis SET access: %w", err)
	}
	return nil
}

// Clear deletes both tokens. Clearing an absent session is not an error.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	if err := s.client.Del(ctx, accessKey(sessionID), refreshKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis DEL: %w", err)
	}
	return nil
}
