package authority

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "rxintake/pkg/domain"
	"rxintake/pkg/platform/sentinel"
)

const (
	challengeKeyPrefix = "otp:challenge:"
	deviceKeyPrefix    = "otp:device:"
)

// RedisChallengeStore keeps one challenge per email with a Redis TTL equal
// to the code lifetime. SET replaces the previous code in one command.
type RedisChallengeStore struct {
	client *redis.Client
	clock  func() time.Time
}

func NewRedisChallengeStore(client *redis.Client) *RedisChallengeStore {
	return &RedisChallengeStore{client: client, clock: time.Now}
}

func (s *RedisChallengeStore) Put(ctx context.Context, c Challenge) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode challenge: %w", err)
	}
	ttl := c.ExpiresAt.Sub(s.clock())
	if ttl <= 0 {
		ttl = time.Second
	}
	return s.client.Set(ctx, challengeKeyPrefix+c.Email.String(), raw, ttl).Err()
}

func (s *RedisChallengeStore) Get(ctx context.Context, email id.Email) (*Challenge, error) {
	raw, err := s.client.Get(ctx, challengeKeyPrefix+email.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var c Challenge
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode challenge: %w", err)
	}
	return &c, nil
}

func (s *RedisChallengeStore) Delete(ctx context.Context, email id.Email) error {
	return s.client.Del(ctx, challengeKeyPrefix+email.String()).Err()
}

// RedisDeviceStore keeps trusted fingerprints in one set per email.
type RedisDeviceStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDeviceStore expires trust ttl after the last successful challenge.
// A non-positive ttl keeps trust indefinitely.
func NewRedisDeviceStore(client *redis.Client, ttl time.Duration) *RedisDeviceStore {
	return &RedisDeviceStore{client: client, ttl: ttl}
}

func (s *RedisDeviceStore) IsTrusted(ctx context.Context, email id.Email, fingerprint string) (bool, error) {
	if fingerprint == "" {
		return false, nil
	}
	return s.client.SIsMember(ctx, deviceKeyPrefix+email.String(), fingerprint).Result()
}

func (s *RedisDeviceStore) Trust(ctx context.Context, device TrustedDevice) error {
	if device.Fingerprint == "" {
		return nil
	}
	key := deviceKeyPrefix + device.Email.String()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, device.Fingerprint)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	return err
}
