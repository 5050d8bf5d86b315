package repository

import (
	"cafe_pos/internal/models"
	"cafe_pos/internal/storage"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlobRepository keeps POS collections in the kv_blobs table.
type BlobRepository interface {
	storage.Gateway
	Keys(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

type blobRepository struct {
	db     *gorm.DB
	prefix string
}

func NewBlobRepository(db *gorm.DB, prefix string) BlobRepository {
	return &blobRepository{db: db, prefix: prefix}
}

func (r *blobRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var blob models.KVBlob
	err := r.db.WithContext(ctx).Where(&models.KVBlob{Key: r.prefix + key}).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return blob.Value, nil
}

// Save inserts the blob or overwrites the existing row for the key.
func (r *blobRepository) Save(ctx context.Context, key string, value []byte) error {
	blob := models.KVBlob{
		Key:       r.prefix + key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys with the prefix removed.
func (r *blobRepository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&models.KVBlob{}).
		Where("key LIKE ?", r.prefix+"%").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, err
	}
	for i, key := range keys {
		keys[i] = key[len(r.prefix):]
	}
	return keys, nil
}

func (r *blobRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *blobRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
