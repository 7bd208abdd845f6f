package main

import (
	"context"
	"log/slog"
	"os"

	"kb-portal/internal/router"
	"kb-portal/internal/server"
	"kb-portal/internal/storage/pg"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appCfg, err := LoadAppConfig()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: appCfg.DatabaseURL})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := pg.NewStore(pool)

	s := server.New(sCfg)

	router.NewArticleRouter(s.Echo, store).Bind()
	router.NewCategoryRouter(s.Echo, store).Bind()

	slog.Info("Starting article API", "port", sCfg.Port)
	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
