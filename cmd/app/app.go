package app

import (
	"context"

	"go.uber.org/zap"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/config"
	"adminconsole/internal/console"
	"adminconsole/internal/database"
	handlers "adminconsole/internal/handler"
	"adminconsole/internal/loading"
	"adminconsole/internal/logger"
	"adminconsole/internal/repository"
	"adminconsole/internal/service"
	"adminconsole/internal/session"
	"adminconsole/internal/storage"
	"adminconsole/internal/toast"
)

func App(ctx context.Context, cfg *config.Config) (*database.DB, *handlers.Handlers) {
	// connection DB
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		logger.Zlog.Fatal("failed to connect to state store", zap.Error(err))
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	sessions := session.NewManager(repo.State)

	client := apiclient.NewClient(sessions, cfg.HTTPTimeout)
	services := service.NewService(client, cfg.Services)

	loader := loading.NewCounter()
	toasts := toast.NewQueue()

	deps := console.Deps{
		Services:       services,
		Loader:         loader,
		Notifier:       toasts,
		Debounce:       cfg.SearchDebounce,
		MasterPageSize: cfg.MasterPageSize,
	}

	// connection MinIO; uploads are disabled without it
	if cfg.MinIO.Enabled() {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			logger.Zlog.Warn("image storage unavailable, uploads disabled", zap.Error(err))
		} else {
			deps.Storage = minioClient
		}
	}

	h := handlers.NewHandlers(console.New(deps), services, sessions, loader, toasts, db, cfg)
	return db, h
}
