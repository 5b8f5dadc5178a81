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
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/okami-ct/okami-dashboard/api/swagger"
	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/handler"
	"github.com/okami-ct/okami-dashboard/internal/middleware"
	"github.com/okami-ct/okami-dashboard/internal/repository"
	"github.com/okami-ct/okami-dashboard/internal/service"
	"github.com/okami-ct/okami-dashboard/internal/store"
	"github.com/okami-ct/okami-dashboard/pkg/apiclient"
	"github.com/okami-ct/okami-dashboard/pkg/cache"
	"github.com/okami-ct/okami-dashboard/pkg/config"
	"github.com/okami-ct/okami-dashboard/pkg/jobs"
	"github.com/okami-ct/okami-dashboard/pkg/logger"
	corsmiddleware "github.com/okami-ct/okami-dashboard/pkg/middleware/cors"
	reqidmiddleware "github.com/okami-ct/okami-dashboard/pkg/middleware/requestid"
	"github.com/okami-ct/okami-dashboard/pkg/storage"
)

// @title Okami Dashboard API
// @version 1.0.0
// @description Dashboard backend for the Okami academy
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey SessionHeader
// @in header
// @name X-Session-ID

const maintenanceInterval = 5 * time.Minute

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

	metrics := service.NewMetricsService()
	validate := dto.NewValidator()

	client, err := apiclient.New(apiclient.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		Observer: metrics,
		Logger:   logr,
	})
	if err != nil {
		logr.Fatal("failed to init api client", zap.Error(err))
	}

	sessionRepo := repository.NewSessionRepository(nil, cfg.Session.KeyPrefix, logr)
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close() //nolint:errcheck
		sessionRepo = repository.NewSessionRepository(rdb, cfg.Session.KeyPrefix, logr)
	}
	sessions := service.NewSessionService(sessionRepo, service.NewAuthService(client), validate, cfg.Session.TTL, logr)

	storeOpts := store.Options{Limit: cfg.Dashboard.DefaultPageLimit, Logger: logr, Recorder: metrics}
	hub := store.NewHub(func(token string) *store.Registry {
		return store.NewRegistry(service.NewServices(client.WithTokens(apiclient.StaticToken(token))), storeOpts)
	}, logr)

	files, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Fatal("failed to init report storage", zap.Error(err))
	}
	secret := cfg.Reports.SigningSecret
	if secret == "" {
		secret = uuid.NewString()
		logr.Warn("REPORTS_SIGNING_SECRET not set, download links will not survive a restart")
	}
	reports := service.NewReportService(files, storage.NewSignedURLSigner(secret, cfg.Reports.TTL), cfg.Reports.TTL, logr)

	maintenance := jobs.NewQueue("maintenance", jobs.QueueConfig{Logger: logr, MaxRetries: 2, RetryDelay: 30 * time.Second})
	mustRegister(logr, maintenance, "sweep_session_stores", func(context.Context) (int, error) {
		return hub.Sweep(cfg.Session.TTL), nil
	})
	mustRegister(logr, maintenance, "cleanup_reports", func(context.Context) (int, error) {
		return reports.Cleanup()
	})
	maintenance.Start(ctx)
	defer maintenance.Stop()
	for _, task := range []string{"sweep_session_stores", "cleanup_reports"} {
		if err := maintenance.Every(maintenanceInterval, task); err != nil {
			logr.Fatal("failed to schedule maintenance", zap.String("task", task), zap.Error(err))
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	if cfg.Dashboard.DocsEnabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, handler.Dependencies{
		Sessions:       sessions,
		SessionBackend: sessionRepo,
		Hub:            hub,
		Reports:        reports,
		Metrics:        metrics,
		Validate:       validate,
		Logger:         logr,
		SecureCookie:   cfg.Env == config.EnvProduction,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "api", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func mustRegister(logr *zap.Logger, q *jobs.Queue, name string, task jobs.Task) {
	if err := q.Register(name, task); err != nil {
		logr.Fatal("failed to register maintenance task", zap.String("task", name), zap.Error(err))
	}
}
