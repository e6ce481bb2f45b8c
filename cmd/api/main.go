package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	"github.com/BruksfildServices01/phone-reserve/internal/cache"
	"github.com/BruksfildServices01/phone-reserve/internal/config"
	dbpkg "github.com/BruksfildServices01/phone-reserve/internal/db"
	"github.com/BruksfildServices01/phone-reserve/internal/logger"
	"github.com/BruksfildServices01/phone-reserve/internal/metrics"
	"github.com/BruksfildServices01/phone-reserve/internal/routes"
	"github.com/BruksfildServices01/phone-reserve/internal/storage"
	"github.com/BruksfildServices01/phone-reserve/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("development")
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(cfg.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validators.Register(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise database")
	}
	if err := dbpkg.EnsureAdmin(ctx, db, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	rdb, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var uploader *storage.ImageUploader
	if cfg.StorageEnabled() {
		uploader = storage.NewImageUploader(storage.NewS3Store(storage.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		}))
	} else {
		log.Warn().Msg("S3_BUCKET not set, image uploads disabled")
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    dispatcher,
		Redis:    rdb,
		Uploader: uploader,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
