package main

import (
	"cafe_pos/internal/config"
	"cafe_pos/internal/database"
	"cafe_pos/internal/logger"
	"cafe_pos/internal/migrations"
	"cafe_pos/internal/repository"
	"cafe_pos/internal/services"
	"context"
	"flag"
	"log"

	"go.uber.org/zap"
)

func main() {
	reset := flag.Bool("reset", false, "drop kv_blobs before migrating (deletes all sales)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	lgr, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer lgr.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, database.LogLevel(cfg.LogLevel))
	if err != nil {
		lgr.Fatal("failed to connect to database", zap.Error(err))
	}

	menu, err := services.DefaultMenu(cfg.MenuSeedFile)
	if err != nil {
		lgr.Fatal("failed to read default menu", zap.Error(err))
	}

	err = migrations.RunMigrations(context.Background(), db, migrations.Options{
		KeyPrefix:   cfg.KeyPrefix,
		Reset:       *reset,
		DefaultMenu: menu,
	}, lgr)
	if err != nil {
		lgr.Fatal("failed to initialize database", zap.Error(err))
	}

	keys, err := repository.NewBlobRepository(db, cfg.KeyPrefix).Keys(context.Background())
	if err != nil {
		lgr.Fatal("failed to list stored keys", zap.Error(err))
	}
	lgr.Info("database initialization completed", zap.Int("menu_items", len(menu)), zap.Strings("keys", keys))
}
