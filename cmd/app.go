package cmd

import (
	"context"
	"fmt"
	"log"

	"restaurant-review/internal/data/repository"
	"restaurant-review/pkg/database"
	"restaurant-review/pkg/kvstore"
	"restaurant-review/pkg/utils"

	"go.uber.org/zap"
)

// deps holds what every subcommand needs.
type deps struct {
	config *utils.Config
	logger *zap.Logger
	store  kvstore.Store
	repo   *repository.Repository
}

func newDeps(ctx context.Context) (*deps, error) {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	store, err := openStore(ctx, config, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &deps{
		config: config,
		logger: logger,
		store:  store,
		repo:   repository.NewRepository(store, logger),
	}, nil
}

func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (kvstore.Store, error) {
	switch config.Store.Driver {
	case utils.StoreDriverRedis:
		client, err := database.InitRedis(ctx, config.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr()))
		return kvstore.NewRedisStore(client, logger), nil
	default:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		logger.Info("Database connected successfully", zap.String("host", config.Database.Host))
		return kvstore.NewPostgresStore(db, logger), nil
	}
}

func (rt *deps) close() {
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("Failed to close store", zap.Error(err))
	}
	_ = rt.logger.Sync()
}
