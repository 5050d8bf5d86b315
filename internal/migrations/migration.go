package migrations

import (
	"cafe_pos/internal/models"
	"cafe_pos/internal/repository"
	"cafe_pos/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options controls RunMigrations.
type Options struct {
	KeyPrefix string
	// Reset drops kv_blobs before recreating it.
	Reset bool
	// DefaultMenu is stored under the menu key when no menu exists yet.
	DefaultMenu []models.MenuItem
}

// RunMigrations prepares the kv_blobs table and seeds the default menu.
func RunMigrations(ctx context.Context, db *gorm.DB, opts Options, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("running database migrations")

	if opts.Reset {
		logger.Warn("dropping kv_blobs")
		if err := db.Migrator().DropTable(&models.KVBlob{}); err != nil {
			logger.Warn("error dropping tables", zap.Error(err))
		}
	}

	if err := db.AutoMigrate(&models.KVBlob{}); err != nil {
		return fmt.Errorf("failed to migrate kv_blobs: %w", err)
	}

	if err := createDefaultData(ctx, repository.NewBlobRepository(db, opts.KeyPrefix), opts.DefaultMenu, logger); err != nil {
		return err
	}

	logger.Info("database migrations completed")
	return nil
}

// createDefaultData stores the default menu and empty sales and order collections
// for keys that do not exist yet.
func createDefaultData(ctx context.Context, repo repository.BlobRepository, menu []models.MenuItem, logger *zap.Logger) error {
	if menu == nil {
		menu = []models.MenuItem{}
	}
	seeds := []struct {
		key   string
		value interface{}
	}{
		{storage.KeyMenu, menu},
		{storage.KeySales, []models.Sale{}},
		{storage.KeyCurrentOrder, []models.OrderLine{}},
	}

	for _, seed := range seeds {
		_, err := repo.Load(ctx, seed.key)
		if err == nil {
			logger.Info("key already present", zap.String("key", seed.key))
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		blob, err := json.Marshal(seed.value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", seed.key, err)
		}
		if err := repo.Save(ctx, seed.key, blob); err != nil {
			return err
		}
		logger.Info("seeded key", zap.String("key", seed.key))
	}
	return nil
}
