package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-deadline/internal/config"
	"github.com/KasumiMercury/primind-deadline/internal/handler"
	"github.com/KasumiMercury/primind-deadline/internal/health"
	"github.com/KasumiMercury/primind-deadline/internal/infra/deadlinerecorder"
	"github.com/KasumiMercury/primind-deadline/internal/infra/repository"
	"github.com/KasumiMercury/primind-deadline/internal/observability/logging"
	"github.com/KasumiMercury/primind-deadline/internal/observability/metrics"
	"github.com/KasumiMercury/primind-deadline/internal/observability/middleware"
	"github.com/KasumiMercury/primind-deadline/internal/service/deadline"
	"github.com/KasumiMercury/primind-deadline/internal/service/label"
	"github.com/KasumiMercury/primind-deadline/internal/service/notification"
	"github.com/KasumiMercury/primind-deadline/internal/service/remaining"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("deadline")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	obs.SetLogLevel(cfg.LogLevel)

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	deadlineMetrics, err := metrics.NewDeadlineMetrics()
	if err != nil {
		slog.Error("failed to initialize deadline metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB locally, BigQuery under gcloud
	recorder, err := deadlinerecorder.NewRecorder(ctx, deadlinerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize deadline recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close deadline recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	plurals := remaining.PluralizeByCount
	if cfg.Deadline.LegacyPlurals {
		plurals = remaining.PluralizeLegacy
	}
	classifier := remaining.NewClassifier(cfg.Deadline.Location, plurals)

	var notifier deadline.EventNotifier
	if taskQueue != nil {
		notifier = notification.NewScheduler(taskQueue, classifier, deadlineMetrics)
	}

	deadlineService := deadline.NewService(
		repository.NewTaskRepository(redisClient),
		repository.NewReminderRepository(redisClient),
		repository.NewEventRepository(redisClient),
		classifier,
		notifier,
		recorder,
		deadlineMetrics,
	)

	remainingHandler := handler.NewRemainingHandler(classifier)
	itemHandler := handler.NewItemHandler(deadlineService)
	labelHandler := handler.NewLabelHandler(label.NewService(repository.NewLabelRepository(redisClient)))

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-deadline/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	r.POST(grpcHealthPath+"*method", gin.WrapH(grpcHealthHandler))

	v1 := r.Group("/api/v1")
	remainingHandler.Register(v1)
	itemHandler.Register(v1)
	labelHandler.Register(v1)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("timezone", cfg.Deadline.Location.String()),
			slog.Bool("legacy_plurals", cfg.Deadline.LegacyPlurals),
			slog.Bool("notifications_enabled", notifier != nil),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		if err := recorder.Flush(shutdownCtx); err != nil {
			slog.Warn("failed to flush deadline recorder", slog.String("error", err.Error()))
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
