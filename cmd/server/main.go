package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/askarbek/carvault/config"
	"github.com/askarbek/carvault/internal/email"
	"github.com/askarbek/carvault/internal/health"
	"github.com/askarbek/carvault/internal/imagestore"
	"github.com/askarbek/carvault/internal/infrastructure/postgres"
	"github.com/askarbek/carvault/internal/janitor"
	ctxlog "github.com/askarbek/carvault/internal/log"
	"github.com/askarbek/carvault/internal/metrics"
	"github.com/askarbek/carvault/internal/token"
	httptransport "github.com/askarbek/carvault/internal/transport/http"
	"github.com/askarbek/carvault/internal/transport/http/handler"
	"github.com/askarbek/carvault/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	imageStore, err := imagestore.NewS3Store(ctx, imagestore.Config{
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		stop()
		log.Fatalf("image store: %v", err)
	}

	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Users
	userRepo := postgres.NewUserRepository(pool)
	authUsecase := usecase.NewAuthUsecase(userRepo, tokens, emailSender)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Images
	imageRepo := postgres.NewImageUploadRepository(pool)
	imageUsecase := usecase.NewImageUsecase(imageStore, imageRepo)
	imageHandler := handler.NewImageHandler(imageUsecase, logger)

	// Cars
	carRepo := postgres.NewCarRepository(pool)
	carUsecase := usecase.NewCarUsecase(carRepo, imageUsecase)
	carHandler := handler.NewCarHandler(carUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	j := janitor.New(imageUsecase, logger, cfg.JanitorSchedule, cfg.UploadMaxAge)
	if err := j.Start(ctx); err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, carHandler, imageHandler, tokens),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
