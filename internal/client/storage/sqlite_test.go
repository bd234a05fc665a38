package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/openroad/stopfinder/internal/dbx"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:storagetest?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM metadata`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewSQLiteRepository(db)

	require.NoError(t, repo.Set(ctx, KeyToken, []byte("tok-1")))

	got, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-1"), got)

	// upsert overwrites
	require.NoError(t, repo.Set(ctx, KeyToken, []byte("tok-2")))
	got, err = repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-2"), got)
}

func TestSQLiteRepository_GetMissingReturnsNil(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	got, err := repo.Get(context.Background(), "nosuch")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteRepository_DeleteAndClear(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewSQLiteRepository(db)

	require.NoError(t, repo.Set(ctx, KeyUser, []byte(`{"id":1}`)))
	require.NoError(t, repo.Set(ctx, KeyToken, []byte("tok")))

	require.NoError(t, repo.Delete(ctx, KeyUser))
	got, err := repo.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Clear(ctx))
	got, err = repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteRepository_WorksInsideTx(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyUser, []byte(`{"id":7}`)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyToken, []byte("tok"))
	})
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)
	got, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), got)
}

func TestOpen_AppliesMigrations(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Set(context.Background(), KeyToken, []byte("tok")))
}
