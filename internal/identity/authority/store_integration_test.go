//go:build integration

package authority

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "rxintake/pkg/domain"
	"rxintake/pkg/platform/sentinel"
	"rxintake/pkg/testutil/containers"
)

func TestRedisChallengeStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.NewRedisContainer(t)
	store := NewRedisChallengeStore(rc.Client)
	ctx := context.Background()
	email := id.Email("jane@example.com")
	now := time.Now()

	_, err := store.Get(ctx, email)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, store.Put(ctx, Challenge{Email: email, CodeHash: "h1", IssuedAt: now, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Put(ctx, Challenge{Email: email, CodeHash: "h2", IssuedAt: now, ExpiresAt: now.Add(time.Minute)}))

	got, err := store.Get(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "h2", got.CodeHash)

	ttl, err := rc.Client.TTL(ctx, challengeKeyPrefix+email.String()).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, store.Delete(ctx, email))
	_, err = store.Get(ctx, email)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisDeviceStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.NewRedisContainer(t)
	store := NewRedisDeviceStore(rc.Client, time.Hour)
	ctx := context.Background()
	email := id.Email("jane@example.com")

	trusted, err := store.IsTrusted(ctx, email, "fp-1")
	require.NoError(t, err)
	assert.False(t, trusted)

	require.NoError(t, store.Trust(ctx, TrustedDevice{Email: email, Fingerprint: "fp-1", TrustedAt: time.Now()}))

	trusted, err = store.IsTrusted(ctx, email, "fp-1")
	require.NoError(t, err)
	assert.True(t, trusted)

	trusted, err = store.IsTrusted(ctx, "other@example.com", "fp-1")
	require.NoError(t, err)
	assert.False(t, trusted)
}
