package migrations

import (
	"cafe_pos/internal/database"
	"cafe_pos/internal/models"
	"cafe_pos/internal/repository"
	"cafe_pos/internal/storage"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestRunMigrationsSeedsOnce(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "pos.db")), logger.Silent)
	require.NoError(t, err)

	menu := []models.MenuItem{{ID: 1, Name: "Espresso", Category: "Coffee", Price: decimal.NewFromInt(25)}}
	opts := Options{KeyPrefix: "moonicafe:", DefaultMenu: menu}
	require.NoError(t, RunMigrations(ctx, db, opts, nil))

	repo := repository.NewBlobRepository(db, "moonicafe:")
	blob, err := repo.Load(ctx, storage.KeyMenu)
	require.NoError(t, err)
	var stored []models.MenuItem
	require.NoError(t, json.Unmarshal(blob, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "Espresso", stored[0].Name)

	blob, err = repo.Load(ctx, storage.KeySales)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(blob))

	// A second run keeps the menu that is already stored.
	require.NoError(t, repo.Save(ctx, storage.KeyMenu, []byte(`[]`)))
	require.NoError(t, RunMigrations(ctx, db, opts, nil))
	blob, err = repo.Load(ctx, storage.KeyMenu)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(blob))
}

func TestRunMigrationsReset(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "pos.db")), logger.Silent)
	require.NoError(t, err)

	repo := repository.NewBlobRepository(db, "")
	require.NoError(t, repo.Save(ctx, storage.KeySales, []byte(`[{"id":1}]`)))

	require.NoError(t, RunMigrations(ctx, db, Options{Reset: true}, nil))

	blob, err := repo.Load(ctx, storage.KeySales)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(blob))
}
