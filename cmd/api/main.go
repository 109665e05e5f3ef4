package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"adminconsole/cmd/app"
	"adminconsole/internal/config"
	"adminconsole/internal/logger"
	"adminconsole/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, handler := app.App(ctx, cfg)
	defer db.CloseDB()

	handlerChain := middleware.Chain(
		handler.Router(),
		middleware.RequireSession(handler.Sessions),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:    addr,
		Handler: handlerChain,
	}

	go func() {
		logger.Zlog.Info("admin console listening",
			zap.String("addr", addr),
			zap.String("environment", cfg.Environment),
			zap.String("db_driver", cfg.DB.Driver))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Zlog.Info("shutting down")

	handler.Console.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
