package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/redislock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if !timezone.IsValid(cfg.DefaultTimezone) {
		log.Warn("unknown DEFAULT_TIMEZONE, falling back to UTC", zap.String("tz", cfg.DefaultTimezone))
	}

	if err := validators.RegisterWithGin(); err != nil {
		log.Fatal("register validators", zap.Error(err))
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = redislock.NewRedisClient(context.Background(), cfg)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		log.Info("slot lock enabled", zap.String("redis_addr", cfg.RedisAddr))
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log.Named("audit"), cfg.AuditQueueSize)

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Log:    log,
		Audit:  dispatcher,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}

	dispatcher.Close()
}
