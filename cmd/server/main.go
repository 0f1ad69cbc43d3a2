package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/api"
	"github.com/lalith-99/dreams/internal/config"
	"github.com/lalith-99/dreams/internal/observ"
	"github.com/lalith-99/dreams/internal/service"
	"github.com/lalith-99/dreams/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	st, err := store.Open(cfg.SnapshotPath, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	services := service.New(st, cfg.JWTSecret, logger)

	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())
	api.Register(srv, services, st, logger)

	logger.Info("starting Dreams",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("snapshot", cfg.SnapshotPath),
	)

	return srv.Run(":" + cfg.Port)
}
