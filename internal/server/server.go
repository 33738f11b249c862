package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-comment-api/internal/constants"
	"github.com/yukikurage/task-comment-api/internal/handlers"
	"github.com/yukikurage/task-comment-api/internal/middleware"
	"github.com/yukikurage/task-comment-api/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Deps holds everything the router needs
type Deps struct {
	TaskHandler    *handlers.TaskHandler
	CommentHandler *handlers.CommentHandler
	Logger         *slog.Logger
	Metrics        *telemetry.Metrics
	AllowedOrigins []string
}

// NewRouter builds the gin engine with middleware and API routes
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  deps.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID},
			ExposeHeaders: []string{constants.HeaderRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/", handlers.Home)
	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", deps.TaskHandler.ListTasks)
			tasks.POST("", deps.TaskHandler.CreateTask)
			tasks.PUT("/:id", deps.TaskHandler.UpdateTask)
			tasks.DELETE("/:id", deps.TaskHandler.DeleteTask)
			tasks.GET("/:id/comments", deps.CommentHandler.ListComments)
			tasks.POST("/:id/comments", deps.CommentHandler.CreateComment)
		}

		comments := api.Group("/comments")
		{
			comments.PUT("/:id", deps.CommentHandler.UpdateComment)
			comments.DELETE("/:id", deps.CommentHandler.DeleteComment)
		}
	}

	return r
}

// Instrument wraps handler with OpenTelemetry HTTP tracing, skipping health checks
func Instrument(handler http.Handler, opts ...otelhttp.Option) http.Handler {
	opts = append([]otelhttp.Option{
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	}, opts...)
	return otelhttp.NewHandler(handler, "http-server", opts...)
}

// Run serves handler on addr until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      Instrument(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
