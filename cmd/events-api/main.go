package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/college-events-api/api/swagger"
	"github.com/noah-isme/college-events-api/internal/seed"
	"github.com/noah-isme/college-events-api/internal/server"
	"github.com/noah-isme/college-events-api/pkg/config"
	"github.com/noah-isme/college-events-api/pkg/logger"
)

// @title College Events API
// @version 0.1.0
// @description Campus event listing, approval workflow, registrations and calendar
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	state, err := seed.Load(cfg.Seed.File, seed.Options{BcryptCost: cfg.Seed.BcryptCost, Now: time.Now()})
	if err != nil {
		logr.Fatal("failed to load seed data", zap.Error(err), zap.String("file", cfg.Seed.File))
	}
	logr.Info("seed loaded",
		zap.Int("users", len(state.Users)),
		zap.Int("events", len(state.Events)),
		zap.Int("registrations", len(state.Registrations)),
		zap.String("id_strategy", cfg.IDs.Strategy),
	)

	router := server.NewApplication(cfg, logr, state)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logr.Sugar().Infow("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := server.New(cfg.Port, router, logr).Run(ctx); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
