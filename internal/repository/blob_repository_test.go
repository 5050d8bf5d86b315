package repository

import (
	"cafe_pos/internal/models"
	"cafe_pos/internal/storage"
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pos.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KVBlob{}))
	return db
}

func TestBlobRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewBlobRepository(newTestDB(t), "moonicafe:")

	_, err := repo.Load(ctx, storage.KeySales)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, repo.Save(ctx, storage.KeySales, []byte(`[]`)))
	require.NoError(t, repo.Save(ctx, storage.KeySales, []byte(`[{"id":7}]`)))

	blob, err := repo.Load(ctx, storage.KeySales)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":7}]`, string(blob))
}

func TestBlobRepositoryKeys(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBlobRepository(db, "moonicafe:")
	other := NewBlobRepository(db, "elsewhere:")

	require.NoError(t, repo.Save(ctx, storage.KeyMenu, []byte(`[]`)))
	require.NoError(t, repo.Save(ctx, storage.KeyCurrentOrder, []byte(`[]`)))
	require.NoError(t, other.Save(ctx, storage.KeyMenu, []byte(`[]`)))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{storage.KeyCurrentOrder, storage.KeyMenu}, keys)
}

func TestBlobRepositoryPing(t *testing.T) {
	ctx := context.Background()
	repo := NewBlobRepository(newTestDB(t), "moonicafe:")
	require.NoError(t, storage.Ping(ctx, repo))

	require.NoError(t, repo.Close())
	assert.Error(t, repo.Ping(ctx))
}
