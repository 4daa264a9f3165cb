package main

import (
	"context"
	"fmt"

	"github.com/jonathan/rolodex/internal/config"
	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/logging"
	"go.uber.org/zap"
)

// env bundles the configuration, logger and database every database command needs.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *db.DB
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &env{cfg: cfg, logger: logger, db: database}, nil
}

func (e *env) Close() {
	e.db.Close()
	_ = e.logger.Sync()
}
