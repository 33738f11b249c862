package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-comment-api/internal/config"
	"github.com/yukikurage/task-comment-api/internal/database"
	"github.com/yukikurage/task-comment-api/internal/handlers"
	"github.com/yukikurage/task-comment-api/internal/repository"
	"github.com/yukikurage/task-comment-api/internal/server"
	"github.com/yukikurage/task-comment-api/internal/services"
	"github.com/yukikurage/task-comment-api/internal/telemetry"
	"go.opentelemetry.io/otel"
)

func runServe(ctx context.Context, configFile string) error {
	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := telemetry.NewLocalLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("starting application",
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.Addr()),
	)

	if cfg.TelemetryEnabled() {
		otelLogger, shutdown, err := initTelemetry(ctx, cfg)
		if err != nil {
			return err
		}
		defer shutdown()
		logger = otelLogger
		slog.SetDefault(logger)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		return err
	}

	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	taskService := services.NewTaskService(taskRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo)

	metrics, err := telemetry.NewMetrics(otel.Meter(cfg.ServiceName), taskService.CountTasks, commentService.CountComments)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	router := server.NewRouter(server.Deps{
		TaskHandler:    handlers.NewTaskHandler(taskService, logger),
		CommentHandler: handlers.NewCommentHandler(commentService, logger),
		Logger:         logger,
		Metrics:        metrics,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg.Addr(), router, logger)
}

// initTelemetry starts the OTLP tracer, meter and logger providers and returns
// the bridged logger with a function that flushes and stops all three.
func initTelemetry(ctx context.Context, cfg *config.Config) (*slog.Logger, func(), error) {
	tp, err := telemetry.InitTracerProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
	}

	mp, err := telemetry.InitMeterProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, fmt.Errorf("failed to initialize meter provider: %w", err)
	}

	// Logger provider last so logs correlate with traces
	lp, logger, err := telemetry.InitLoggerProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		_ = mp.Shutdown(ctx)
		_ = tp.Shutdown(ctx)
		return nil, nil, fmt.Errorf("failed to initialize logger provider: %w", err)
	}

	shutdown := func() {
		shutdownCtx := context.Background()
		if err := lp.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown logger provider", slog.Any("error", err))
		}
		if err := mp.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown meter provider", slog.Any("error", err))
		}
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown tracer provider", slog.Any("error", err))
		}
	}

	return logger, shutdown, nil
}

func runMigrate(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(telemetry.NewLocalLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", slog.Any("error", err))
		}
	}()

	return database.Migrate(db)
}
