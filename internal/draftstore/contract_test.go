package draftstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "rxintake/pkg/domain"
	"rxintake/pkg/platform/sentinel"
)

// runStoreContract exercises the behavior every backend must share.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key returns not found", func(t *testing.T) {
		_, err := store.Get(ctx, id.NewSessionID(), KeyDraftRequest)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("set then get returns the value", func(t *testing.T) {
		session := id.NewSessionID()
		require.NoError(t, store.Set(ctx, session, KeyDraftRequest, []byte(`{"condition":"insomnia"}`)))

		got, err := store.Get(ctx, session, KeyDraftRequest)
		require.NoError(t, err)
		assert.JSONEq(t, `{"condition":"insomnia"}`, string(got))
	})

	t.Run("set overwrites", func(t *testing.T) {
		session := id.NewSessionID()
		require.NoError(t, store.Set(ctx, session, KeyWizardStep, []byte(`"condition"`)))
		require.NoError(t, store.Set(ctx, session, KeyWizardStep, []byte(`"symptoms"`)))

		got, err := store.Get(ctx, session, KeyWizardStep)
		require.NoError(t, err)
		assert.JSONEq(t, `"symptoms"`, string(got))
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		a, b := id.NewSessionID(), id.NewSessionID()
		require.NoError(t, store.Set(ctx, a, KeySessionToken, []byte(`{"token":"a"}`)))

		_, err := store.Get(ctx, b, KeySessionToken)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("delete removes the key and is idempotent", func(t *testing.T) {
		session := id.NewSessionID()
		require.NoError(t, store.Set(ctx, session, KeySessionToken, []byte(`{"token":"t"}`)))
		require.NoError(t, store.Delete(ctx, session, KeySessionToken))
		require.NoError(t, store.Delete(ctx, session, KeySessionToken))

		_, err := store.Get(ctx, session, KeySessionToken)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		err := store.Set(ctx, id.NewSessionID(), Key("favourite-colour"), []byte(`"blue"`))
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})

	t.Run("ping succeeds", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}
