package draftstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "rxintake/pkg/domain"
	"rxintake/pkg/platform/sentinel"
)

const redisKeyPrefix = "draft:"

// Redis stores each session as one hash whose fields are draft keys. Every
// write refreshes the session TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed Store. A non-positive ttl keeps
// sessions until deleted.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func redisKey(session id.SessionID) string {
	return redisKeyPrefix + session.String()
}

func (s *Redis) Get(ctx context.Context, session id.SessionID, key Key) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	v, err := s.client.HGet(ctx, redisKey(session), string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget: %w", err)
	}
	return v, nil
}

func (s *Redis) Set(ctx context.Context, session id.SessionID, key Key, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	hashKey := redisKey(session)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hashKey, string(key), value)
		if s.ttl > 0 {
			pipe.Expire(ctx, hashKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, session id.SessionID, key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.client.HDel(ctx, redisKey(session), string(key)).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

func (s *Redis) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
