package main

import (
	"cafe_pos/internal/config"
	"cafe_pos/internal/database"
	"cafe_pos/internal/redis"
	"cafe_pos/internal/repository"
	"cafe_pos/internal/storage"
	"context"
	"fmt"
)

// openGateway builds the store selected by STORE_BACKEND.
func openGateway(ctx context.Context, cfg *config.Config) (storage.Gateway, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return storage.NewMemoryGateway(), nil
	case config.BackendFile:
		gw, err := storage.NewFileGateway(cfg.DataDir, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		return gw, nil
	case config.BackendRedis:
		client, err := redis.Initialize(ctx, cfg.RedisURL, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.BackendPostgres:
		db, err := database.Initialize(cfg.DatabaseURL, database.LogLevel(cfg.LogLevel))
		if err != nil {
			return nil, err
		}
		return repository.NewBlobRepository(db, cfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
