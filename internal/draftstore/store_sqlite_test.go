package draftstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rxintake/internal/platform/config"
	"rxintake/internal/platform/sqlite"
	id "rxintake/pkg/domain"
)

func openSQLiteStore(t *testing.T, path string) (*SQLStore, func()) {
	t.Helper()
	db, err := sqlite.Open(context.Background(), config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	store := NewSQLite(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store, func() { _ = db.Close() }
}

func TestSQLiteContract(t *testing.T) {
	store, closeDB := openSQLiteStore(t, filepath.Join(t.TempDir(), "drafts.db"))
	defer closeDB()

	runStoreContract(t, store)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "drafts.db")
	session := id.NewSessionID()

	store, closeDB := openSQLiteStore(t, path)
	require.NoError(t, store.Set(ctx, session, KeyDraftRequest, []byte(`{"condition":"migraine"}`)))
	require.NoError(t, store.Set(ctx, session, KeyWizardStep, []byte(`"symptoms"`)))
	closeDB()

	reopened, closeAgain := openSQLiteStore(t, path)
	defer closeAgain()

	draft, err := reopened.Get(ctx, session, KeyDraftRequest)
	require.NoError(t, err)
	assert.JSONEq(t, `{"condition":"migraine"}`, string(draft))

	step, err := reopened.Get(ctx, session, KeyWizardStep)
	require.NoError(t, err)
	assert.JSONEq(t, `"symptoms"`, string(step))
}
