//go:build integration

package draftstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rxintake/pkg/testutil/containers"
)

func TestRedisContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.NewRedisContainer(t)
	runStoreContract(t, NewRedis(rc.Client, time.Hour))
}

func TestPostgresContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.NewPostgresContainer(t)
	store := NewPostgres(pg.DB)
	require.NoError(t, store.Migrate(context.Background()))
	runStoreContract(t, store)
}
