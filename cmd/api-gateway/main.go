package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tutoring-admin-api/api/swagger"
	"github.com/noah-isme/tutoring-admin-api/internal/router"
	"github.com/noah-isme/tutoring-admin-api/internal/service"
	"github.com/noah-isme/tutoring-admin-api/pkg/cache"
	"github.com/noah-isme/tutoring-admin-api/pkg/config"
	"github.com/noah-isme/tutoring-admin-api/pkg/database"
	"github.com/noah-isme/tutoring-admin-api/pkg/logger"
)

// @title Tutoring Admin API
// @version 1.0.0
// @description Students, class slots, payments and consumed classes with per-student balances
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("failed to prepare schema", zap.Error(err))
	}

	deps := router.Deps{
		Config:  cfg,
		Logger:  logr,
		DB:      db,
		Metrics: service.NewMetricsService(),
	}

	if cfg.Statistics.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("statistics cache disabled", zap.String("addr", cache.Addr(cfg.Redis)), zap.Error(err))
		} else {
			defer client.Close()
			deps.Redis = client
		}
	}

	services := router.NewServices(deps)
	if _, err := services.Auth.EnsureDefaultUser(ctx, cfg.Seed.Username, cfg.Seed.Password); err != nil {
		logr.Fatal("failed to seed default user", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           router.New(deps, services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
