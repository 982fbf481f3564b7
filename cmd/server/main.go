package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/app"
	"github.com/aliskhannn/trivia-quiz-bot/internal/config"
	"github.com/aliskhannn/trivia-quiz-bot/internal/delivery/api"
	"github.com/aliskhannn/trivia-quiz-bot/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := app.Build(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	go services.Importer.Start(ctx)

	handlers := &api.Handlers{
		Sets:    api.NewSetHandler(services.Trivia, services.Results, lg),
		Results: api.NewResultHandler(services.Results, lg),
		Play: api.NewPlayHandler(
			services.Trivia,
			services.Results,
			services.Users,
			cfg.Quiz.CountdownSeconds,
			cfg.HTTP.AllowedOrigins,
			lg,
		),
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(handlers, cfg.HTTP.AllowedOrigins, lg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http server shutdown failed", zap.Error(err))
	}
}
