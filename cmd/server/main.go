package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emuhub/emuhub/internal/api"
	"github.com/emuhub/emuhub/internal/core/domain"
	"github.com/emuhub/emuhub/internal/core/service"
	"github.com/emuhub/emuhub/internal/infrastructure/catalog"
	"github.com/emuhub/emuhub/internal/infrastructure/config"
	"github.com/emuhub/emuhub/internal/infrastructure/storage"
	"github.com/emuhub/emuhub/internal/infrastructure/watch"
	"github.com/emuhub/emuhub/pkg/logger"
)

// @title        emuhub API
// @version      1.0
// @description  Game-ROM catalog and save-state service.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// The saves root and user table must exist before the first request.
	if err := os.MkdirAll(cfg.Storage.SavesDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Storage.SavesDir).Msg("cannot create saves directory")
	}
	userRepo := storage.NewUserRepository(cfg.Storage.UsersFile)
	if err := userRepo.EnsureFile(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.UsersFile).Msg("cannot initialise user table")
	}

	registry := domain.NewRegistry(domain.DefaultSystems())
	scanner := catalog.NewScanner(registry, cfg.Catalog.RomsDir, logger.Component("catalog"))
	blobStore := storage.NewFileStore(cfg.Storage.SavesDir)

	e := api.NewRouter(api.Dependencies{
		Catalog:     service.NewCatalogService(scanner, registry, logger.Component("catalog")),
		Saves:       service.NewSaveService(blobStore, logger.Component("saves")),
		Users:       service.NewUserService(userRepo, logger.Component("users")),
		RomsDir:     cfg.Catalog.RomsDir,
		SavesDir:    cfg.Storage.SavesDir,
		ScanTimeout: cfg.Catalog.ScanTimeout,
		Logger:      log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Catalog.WatchEnabled {
		watcher := watch.NewLibraryWatcher(scanner, registry, cfg.Catalog.RomsDir, logger.Component("watcher"))
		if err := watcher.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("library watcher disabled")
		}
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("roms", cfg.Catalog.RomsDir).Msg("emuhub listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
