package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/rehablink-io/Rehablink/docs"
	"github.com/rehablink-io/Rehablink/internal/bootstrap"
	"github.com/rehablink-io/Rehablink/internal/config"
	"github.com/rehablink-io/Rehablink/internal/modules/handler"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
	"github.com/rehablink-io/Rehablink/internal/router"
	"github.com/rehablink-io/Rehablink/internal/telemetry"
	"github.com/rehablink-io/Rehablink/internal/ws"
)

// @title        Rehablink API
// @version      1.0
// @description  Care coordination server for remote rehabilitation: patient and clinician connections, live exercise sessions with pose scoring, notifications, presence and activity feeds.
// @BasePath     /api/v1
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync()

	if cfg.Telemetry.Enabled {
		if _, err := telemetry.SetupTracing(cfg); err != nil {
			log.Warn("tracing setup failed", zap.Error(err))
		}
		if _, err := telemetry.SetupMetrics(cfg); err != nil {
			log.Warn("metrics setup failed", zap.Error(err))
		}
		if err := telemetry.InitIngestMetrics(); err != nil {
			log.Warn("ingest metrics setup failed", zap.Error(err))
		}
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:              cfg,
		DB:                  do.MustInvoke[*gorm.DB](inj),
		Log:                 log,
		RelationshipHandler: do.MustInvoke[*handler.RelationshipHandler](inj),
		SessionHandler:      do.MustInvoke[*handler.SessionHandler](inj),
		NotificationHandler: do.MustInvoke[*handler.NotificationHandler](inj),
		ActivityHandler:     do.MustInvoke[*handler.ActivityHandler](inj),
		PresenceHandler:     do.MustInvoke[*handler.PresenceHandler](inj),
		Gateway:             do.MustInvoke[*ws.Gateway](inj),
	})

	sessions := do.MustInvoke[service.SessionService](inj)
	go sessions.RunReaper(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server exited", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}

	if cfg.Telemetry.Enabled {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracing shutdown", zap.Error(err))
		}
		if err := telemetry.ShutdownMetrics(shutdownCtx); err != nil {
			log.Warn("metrics shutdown", zap.Error(err))
		}
	}

	if err := inj.Shutdown(); err != nil {
		log.Warn("container shutdown", zap.Error(err))
	}
}
