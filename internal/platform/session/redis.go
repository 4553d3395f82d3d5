package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Store backed by a Redis set per user. The set's TTL
// is refreshed to ttl on every Add, so entries never outlive the longest
// currently-valid token.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

// Connect dials Redis and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

func tokenSetKey(userID string) string {
	return "user_tokens:" + userID
}

func (s *redisStore) Add(ctx context.Context, userID, token string) error {
	key := tokenSetKey(userID)
	if err := s.client.SAdd(ctx, key, token).Err(); err != nil {
		return fmt.Errorf("session.Add: %w", err)
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("session.Add: %w", err)
	}
	return nil
}

func (s *redisStore) Contains(ctx context.Context, userID, token string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, tokenSetKey(userID), token).Result()
	if err != nil {
		return false, fmt.Errorf("session.Contains: %w", err)
	}
	return ok, nil
}

func (s *redisStore) Remove(ctx context.Context, userID, token string) error {
	if err := s.client.SRem(ctx, tokenSetKey(userID), token).Err(); err != nil {
		return fmt.Errorf("session.Remove: %w", err)
	}
	return nil
}
